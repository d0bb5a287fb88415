package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func plan() []TreatmentStep {
	return []TreatmentStep{
		{StepOrder: 1, Description: "Cách ly gà bệnh", Medicines: []Medicine{{Name: "Amprolium", Dosage: "1g/l"}}},
		{StepOrder: 2, Description: "Bổ sung điện giải"},
		{StepOrder: 3, Description: "Khử trùng chuồng", Medicines: []Medicine{{Name: "Iodine", Dosage: "pha loãng 1%"}}},
	}
}

func TestRemoveStepRenumbersContiguously(t *testing.T) {
	steps := RemoveStep(plan(), 1)

	assert.Len(t, steps, 2)
	assert.Equal(t, 1, steps[0].StepOrder)
	assert.Equal(t, 2, steps[1].StepOrder)
	// Relative order of survivors and their medicines is untouched.
	assert.Equal(t, "Cách ly gà bệnh", steps[0].Description)
	assert.Equal(t, "Khử trùng chuồng", steps[1].Description)
	assert.Equal(t, "Iodine", steps[1].Medicines[0].Name)
}

func TestRemoveStepOutOfRangeIsNoop(t *testing.T) {
	steps := plan()
	assert.Equal(t, steps, RemoveStep(steps, -1))
	assert.Equal(t, steps, RemoveStep(steps, 3))
}

func TestRenumberStepsFixesGaps(t *testing.T) {
	steps := []TreatmentStep{
		{StepOrder: 4, Description: "a"},
		{StepOrder: 9, Description: "b"},
	}
	steps = RenumberSteps(steps)
	assert.Equal(t, 1, steps[0].StepOrder)
	assert.Equal(t, 2, steps[1].StepOrder)
}
