package mapper

import (
	"encoding/json"

	"agentcraft-be/internal/entity"
	"agentcraft-be/internal/model"

	"gorm.io/datatypes"
)

type OnboardingMapper struct{}

func NewOnboardingMapper() *OnboardingMapper {
	return &OnboardingMapper{}
}

func (m *OnboardingMapper) ToEntity(p *model.OnboardingProgress) *entity.OnboardingProgress {
	if p == nil {
		return nil
	}

	var wizardData map[string]interface{}
	if len(p.WizardData) > 0 {
		// Malformed rows degrade to nil rather than failing the read.
		_ = json.Unmarshal(p.WizardData, &wizardData)
	}

	return &entity.OnboardingProgress{
		Id:          p.Id,
		UserId:      p.UserId,
		CurrentStep: p.CurrentStep,
		WizardData:  wizardData,
		Completed:   p.Completed,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *OnboardingMapper) ToModel(p *entity.OnboardingProgress) *model.OnboardingProgress {
	if p == nil {
		return nil
	}

	var wizardData datatypes.JSON
	if p.WizardData != nil {
		if raw, err := json.Marshal(p.WizardData); err == nil {
			wizardData = datatypes.JSON(raw)
		}
	}

	return &model.OnboardingProgress{
		Id:          p.Id,
		UserId:      p.UserId,
		CurrentStep: p.CurrentStep,
		WizardData:  wizardData,
		Completed:   p.Completed,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
