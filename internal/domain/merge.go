package domain

// ReferenceField identifies one account-bearing foreign-key column that
// the merge workflow must rewrite. There is no normalized participant
// table; each column is rewritten independently.
type ReferenceField struct {
	Table  string
	Column string
}

func (f ReferenceField) String() string {
	return f.Table + "." + f.Column
}

// ReferenceFields returns the fixed list of columns swept during a
// merge: the nine fixture player slots, the results submitter, the
// availability owner, the challenge submitter and resolver, both league
// rubber slots and both cached-match confirmer fields.
func ReferenceFields() []ReferenceField {
	return []ReferenceField{
		{Table: "match_fixtures", Column: "player1_id"},
		{Table: "match_fixtures", Column: "player2_id"},
		{Table: "match_fixtures", Column: "player3_id"},
		{Table: "match_fixtures", Column: "player4_id"},
		{Table: "match_fixtures", Column: "player5_id"},
		{Table: "match_fixtures", Column: "player6_id"},
		{Table: "match_fixtures", Column: "player7_id"},
		{Table: "match_fixtures", Column: "player8_id"},
		{Table: "match_fixtures", Column: "sitting_player_id"},
		{Table: "match_results", Column: "submitted_by"},
		{Table: "availability_entries", Column: "account_id"},
		{Table: "score_challenges", Column: "challenger_id"},
		{Table: "score_challenges", Column: "resolved_by"},
		{Table: "league_rubbers", Column: "home_player_id"},
		{Table: "league_rubbers", Column: "away_player_id"},
		{Table: "cached_matches", Column: "home_confirmed_by"},
		{Table: "cached_matches", Column: "away_confirmed_by"},
	}
}

// MergeReport summarises an account merge. The merge is best-effort:
// warnings and leftover reference counts are reported, not repaired,
// and a source profile blocked by a foreign-key constraint is kept
// without failing the merge.
type MergeReport struct {
	SourceID          uint             `json:"source_id"`
	TargetID          uint             `json:"target_id"`
	SeasonsMerged     int              `json:"seasons_merged"`
	SeasonsReassigned int              `json:"seasons_reassigned"`
	ReferenceUpdates  map[string]int64 `json:"reference_updates"`
	Leftover          map[string]int64 `json:"leftover_references"`
	Warnings          []string         `json:"warnings"`
	SourceDeleted     bool             `json:"source_deleted"`
}

func NewMergeReport(sourceID, targetID uint) MergeReport {
	return MergeReport{
		SourceID:         sourceID,
		TargetID:         targetID,
		ReferenceUpdates: make(map[string]int64),
		Leftover:         make(map[string]int64),
	}
}
