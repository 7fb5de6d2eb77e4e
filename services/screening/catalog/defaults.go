// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package catalog

import (
	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
)

// Question categories of the built-in lung screening questionnaire. The
// risk factor tables and the adaptive scorer defaults reference these.
const (
	CategoryBasicInfo    = "basic_info"
	CategoryBodyMetrics  = "body_metrics"
	CategorySocial       = "social"
	CategorySmoking      = "smoking_history"
	CategoryPassiveSmoke = "passive_smoking"
	CategoryKitchenFumes = "kitchen_fumes"
	CategoryOccupational = "occupational_exposure"
	CategoryTumorHistory = "tumor_history"
	CategoryImaging      = "imaging"
	CategoryRespiratory  = "respiratory_history"
	CategorySymptoms     = "recent_symptoms"
	CategorySelfReport   = "self_report"
)

// Common answer values for the built-in yes/no questions.
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

var yesNo = []string{AnswerYes, AnswerNo}

// dependsOn is a small literal helper for the table below.
func dependsOn(id, expected string) *datatypes.Dependency {
	return &datatypes.Dependency{QuestionID: id, ExpectedValue: expected}
}

// DefaultQuestions returns the built-in lung cancer early-screening
// questionnaire. Follow-up questions hang off their trigger question via
// depends_on, so a "no" on smoking history skips the whole smoking block.
func DefaultQuestions() []datatypes.Question {
	return []datatypes.Question{
		// Basic information
		{
			ID: "name", Label: "Name", Category: CategoryBasicInfo, Required: true,
			Prompt: "To get started, what name should we use for you?",
		},
		{
			ID: "gender", Label: "Gender", Category: CategoryBasicInfo, Required: true,
			Prompt:  "What is your gender?",
			Options: []string{"male", "female"},
		},
		{
			ID: "birth_year", Label: "Year of birth", Category: CategoryBasicInfo, Required: true,
			Prompt: "Which year were you born?",
			Rule:   datatypes.ValidationRule{Kind: datatypes.RuleIntRange, Min: 1900, Max: 2020},
		},

		// Body metrics
		{
			ID: "height_cm", Label: "Height (cm)", Category: CategoryBodyMetrics, Required: true,
			Prompt: "How tall are you, in centimeters?",
			Rule:   datatypes.ValidationRule{Kind: datatypes.RuleNumberRange, Min: 100, Max: 250},
		},
		{
			ID: "weight_kg", Label: "Weight (kg)", Category: CategoryBodyMetrics, Required: true,
			Prompt: "How much do you weigh, in kilograms?",
			Rule:   datatypes.ValidationRule{Kind: datatypes.RuleNumberRange, Min: 30, Max: 200},
		},

		// Social information
		{
			ID: "occupation", Label: "Occupation", Category: CategorySocial,
			Prompt: "What is your current occupation?",
		},

		// Smoking history with follow-ups
		{
			ID: "smoking_history", Label: "Smoking history", Category: CategorySmoking, Required: true,
			Prompt:  "Do you smoke, or have you smoked in the past?",
			Options: yesNo,
		},
		{
			ID: "smoking_freq", Label: "Cigarettes per day", Category: CategorySmoking,
			Prompt:    "On average, how many cigarettes do you smoke per day?",
			Rule:      datatypes.ValidationRule{Kind: datatypes.RuleIntRange, Min: 0, Max: 100},
			DependsOn: dependsOn("smoking_history", AnswerYes),
		},
		{
			ID: "smoking_years", Label: "Years smoked", Category: CategorySmoking,
			Prompt:    "For how many years in total have you smoked?",
			Rule:      datatypes.ValidationRule{Kind: datatypes.RuleIntRange, Min: 0, Max: 80},
			DependsOn: dependsOn("smoking_history", AnswerYes),
		},
		{
			ID: "smoking_quit", Label: "Quit smoking", Category: CategorySmoking,
			Prompt:    "Have you quit smoking by now?",
			Options:   yesNo,
			DependsOn: dependsOn("smoking_history", AnswerYes),
		},
		{
			ID: "smoking_quit_years", Label: "Years since quitting", Category: CategorySmoking,
			Prompt:    "How many years ago did you quit?",
			Rule:      datatypes.ValidationRule{Kind: datatypes.RuleIntRange, Min: 0, Max: 80},
			DependsOn: dependsOn("smoking_quit", AnswerYes),
		},

		// Passive smoking
		{
			ID: "passive_smoking", Label: "Secondhand smoke exposure", Category: CategoryPassiveSmoke, Required: true,
			Prompt:  "Are you regularly exposed to secondhand smoke at home or at work?",
			Options: yesNo,
		},
		{
			ID: "passive_smoking_years", Label: "Years of secondhand exposure", Category: CategoryPassiveSmoke,
			Prompt:    "For roughly how many years has that been the case?",
			Rule:      datatypes.ValidationRule{Kind: datatypes.RuleIntRange, Min: 0, Max: 80},
			DependsOn: dependsOn("passive_smoking", AnswerYes),
		},

		// Kitchen fumes
		{
			ID: "kitchen_fumes", Label: "Cooking fume exposure", Category: CategoryKitchenFumes, Required: true,
			Prompt:  "Do you cook often and breathe in kitchen fumes regularly?",
			Options: yesNo,
		},
		{
			ID: "kitchen_fumes_years", Label: "Years of fume exposure", Category: CategoryKitchenFumes,
			Prompt:    "For how many years have you been exposed to kitchen fumes?",
			Rule:      datatypes.ValidationRule{Kind: datatypes.RuleIntRange, Min: 0, Max: 80},
			DependsOn: dependsOn("kitchen_fumes", AnswerYes),
		},

		// Occupational exposure
		{
			ID: "occupation_exposure", Label: "Occupational carcinogen exposure", Category: CategoryOccupational, Required: true,
			Prompt:  "Does your work expose you to substances like asbestos, coal tar, or radioactive material?",
			Options: yesNo,
		},
		{
			ID: "occupation_exposure_details", Label: "Exposure details", Category: CategoryOccupational,
			Prompt:    "Which substance is it, and for roughly how many years have you worked with it?",
			DependsOn: dependsOn("occupation_exposure", AnswerYes),
		},

		// Tumor history
		{
			ID: "personal_tumor_history", Label: "Personal tumor history", Category: CategoryTumorHistory, Required: true,
			Prompt:  "Have you ever been diagnosed with a tumor?",
			Options: yesNo,
		},
		{
			ID: "personal_tumor_details", Label: "Tumor type and year", Category: CategoryTumorHistory,
			Prompt:    "Could you share the tumor type and the year of diagnosis?",
			DependsOn: dependsOn("personal_tumor_history", AnswerYes),
		},
		{
			ID: "family_cancer_history", Label: "Family lung cancer history", Category: CategoryTumorHistory, Required: true,
			Prompt:  "Has a parent, sibling, or child of yours ever had lung cancer?",
			Options: yesNo,
		},
		{
			ID: "family_cancer_details", Label: "Relative and cancer type", Category: CategoryTumorHistory,
			Prompt:    "Which relative was it, and what type of cancer?",
			DependsOn: dependsOn("family_cancer_history", AnswerYes),
		},

		// Imaging
		{
			ID: "chest_ct_last_year", Label: "Chest CT within a year", Category: CategoryImaging, Required: true,
			Prompt:  "Have you had a chest CT scan in the past year?",
			Options: yesNo,
		},

		// Respiratory disease history
		{
			ID: "chronic_lung_disease", Label: "Chronic lung disease", Category: CategoryRespiratory, Required: true,
			Prompt:  "Have you been diagnosed with chronic bronchitis, emphysema, tuberculosis, or COPD?",
			Options: yesNo,
		},
		{
			ID: "chronic_lung_disease_years", Label: "Years with the condition", Category: CategoryRespiratory,
			Prompt:    "For how many years have you had it?",
			Rule:      datatypes.ValidationRule{Kind: datatypes.RuleIntRange, Min: 0, Max: 80},
			DependsOn: dependsOn("chronic_lung_disease", AnswerYes),
		},

		// Recent symptoms
		{
			ID: "recent_weight_loss", Label: "Unexplained weight loss", Category: CategorySymptoms, Required: true,
			Prompt:  "In the past six months, have you lost weight without trying to?",
			Options: yesNo,
		},
		{
			ID: "weight_loss_kg", Label: "Weight lost (kg)", Category: CategorySymptoms,
			Prompt:    "Roughly how many kilograms have you lost?",
			Rule:      datatypes.ValidationRule{Kind: datatypes.RuleNumberRange, Min: 0, Max: 30},
			DependsOn: dependsOn("recent_weight_loss", AnswerYes),
		},
		{
			ID: "recent_symptoms", Label: "Persistent respiratory symptoms", Category: CategorySymptoms, Required: true,
			Prompt:  "Recently, have you had a persistent dry cough, blood in your sputum, or a hoarse voice?",
			Options: yesNo,
		},
		{
			ID: "recent_symptoms_details", Label: "Symptom details", Category: CategorySymptoms,
			Prompt:    "Could you describe those symptoms in a bit more detail?",
			DependsOn: dependsOn("recent_symptoms", AnswerYes),
		},

		// Self assessment
		{
			ID: "self_feeling", Label: "Overall self assessment", Category: CategorySelfReport, Required: true,
			Prompt:  "Overall, how have you been feeling lately?",
			Options: []string{"good", "fair", "poor"},
		},
	}
}

// Default builds the built-in catalog. The definitions above are covered by
// tests, so a load failure here is a programming error, not configuration.
func Default() (*Catalog, error) {
	return Load(DefaultQuestions())
}
