package mapper

import (
	"volunteer-marketplace-be/internal/entity"
	"volunteer-marketplace-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:        u.ID,
		PublicId:  u.PublicID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      entity.UserRole(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		ID:        u.Id,
		PublicID:  u.PublicId,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type ProjectMapper struct{}

func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

func (m *ProjectMapper) ToEntity(p *model.Project) *entity.Project {
	if p == nil {
		return nil
	}
	return &entity.Project{
		Id:                   p.ID,
		PublicId:             p.PublicID,
		OrganizationPublicId: p.OrganizationPublicID,
		Title:                p.Title,
		Category:             p.Category,
		Subcategory:          p.Subcategory,
		Status:               entity.ProjectStatus(p.Status),
		PricingType:          entity.PricingType(p.PricingType),
		FeeAmount:            p.FeeAmount,
		Currency:             p.Currency,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func (m *ProjectMapper) ToModel(p *entity.Project) *model.Project {
	if p == nil {
		return nil
	}
	return &model.Project{
		ID:                   p.Id,
		PublicID:             p.PublicId,
		OrganizationPublicID: p.OrganizationPublicId,
		Title:                p.Title,
		Category:             p.Category,
		Subcategory:          p.Subcategory,
		Status:               string(p.Status),
		PricingType:          string(p.PricingType),
		FeeAmount:            p.FeeAmount,
		Currency:             p.Currency,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
