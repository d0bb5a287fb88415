package api

// RenumberSteps rewrites step_order to 1..N in slice order. Call it after
// any removal so the plan stays contiguous before the whole disease is sent
// on save.
func RenumberSteps(steps []TreatmentStep) []TreatmentStep {
	for i := range steps {
		steps[i].StepOrder = i + 1
	}
	return steps
}

// RemoveStep deletes the step at index and renumbers the remainder,
// preserving the relative order of the surviving steps and their medicines.
func RemoveStep(steps []TreatmentStep, index int) []TreatmentStep {
	if index < 0 || index >= len(steps) {
		return steps
	}
	out := make([]TreatmentStep, 0, len(steps)-1)
	out = append(out, steps[:index]...)
	out = append(out, steps[index+1:]...)
	return RenumberSteps(out)
}
