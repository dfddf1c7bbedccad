package workflow

// Trigger represents an event that can cause a state transition.
type Trigger string

const (
	TriggerCalculate    Trigger = "CALCULATE"
	TriggerSucceed      Trigger = "SUCCEED"
	TriggerFail         Trigger = "FAIL"
	TriggerInputChanged Trigger = "INPUT_CHANGED"
)

// String returns the string representation of the trigger.
func (t Trigger) String() string {
	return string(t)
}
