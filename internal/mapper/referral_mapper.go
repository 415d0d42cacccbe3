package mapper

import (
	"encoding/json"

	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/model"
)

type ReferralMapper struct{}

func NewReferralMapper() *ReferralMapper {
	return &ReferralMapper{}
}

func (m *ReferralMapper) ToEntity(r *model.Referral) (*entity.Referral, error) {
	if r == nil {
		return nil, nil
	}
	var metadata map[string]interface{}
	if len(r.Metadata) > 0 {
		if err := json.Unmarshal(r.Metadata, &metadata); err != nil {
			return nil, err
		}
	}
	return &entity.Referral{
		Id:               r.ID,
		PublicId:         r.PublicID,
		ReferrerPublicId: r.ReferrerPublicID,
		RefereePublicId:  r.RefereePublicID,
		ReferrerPoints:   r.ReferrerPoints,
		RefereePoints:    r.RefereePoints,
		Metadata:         metadata,
		Status:           entity.ReferralStatus(r.Status),
		ResolvedAt:       r.ResolvedAt,
		Version:          r.Version,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}, nil
}

func (m *ReferralMapper) ToModel(r *entity.Referral) (*model.Referral, error) {
	if r == nil {
		return nil, nil
	}
	out := &model.Referral{
		ID:               r.Id,
		PublicID:         r.PublicId,
		ReferrerPublicID: r.ReferrerPublicId,
		RefereePublicID:  r.RefereePublicId,
		ReferrerPoints:   r.ReferrerPoints,
		RefereePoints:    r.RefereePoints,
		Status:           string(r.Status),
		ResolvedAt:       r.ResolvedAt,
		Version:          r.Version,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if len(r.Metadata) > 0 {
		raw, err := json.Marshal(r.Metadata)
		if err != nil {
			return nil, err
		}
		out.Metadata = raw
	}
	return out, nil
}
