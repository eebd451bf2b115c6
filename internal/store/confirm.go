package store

// ClearPrompt is the question put to the Confirmer before Clear empties the list.
const ClearPrompt = "Are you sure you want to delete all items?"

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Always returns a Confirmer that answers every prompt with answer.
func Always(answer bool) Confirmer {
	return ConfirmFunc(func(string) bool { return answer })
}
