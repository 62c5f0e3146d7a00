package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errMergeSameAccount = errors.New("source and target accounts must differ")

type MergeAccountsRequest struct {
	SourceID uint `json:"source_id"`
	TargetID uint `json:"target_id"`
}

func (req *MergeAccountsRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.SourceID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.TargetID, validation.Required, validation.Min(uint(1))),
	)
	if err != nil {
		return err
	}

	if req.SourceID == req.TargetID {
		return errMergeSameAccount
	}

	return nil
}

type CreateSkeletonRequest struct {
	Name string `json:"name"`
}

func (req *CreateSkeletonRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
	)
}
