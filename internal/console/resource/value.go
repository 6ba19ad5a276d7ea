package resource

import (
	"fmt"
	"strconv"
)

// InputKind declares how a raw form value should be typed before it is
// folded into a resource, mirroring the input kinds the settings forms use.
type InputKind int

const (
	InputText InputKind = iota
	InputNumber
	InputCheckbox
)

// Input is one field edit as captured from the user.
type Input struct {
	Kind    InputKind
	Value   string
	Checked bool
}

// ExtractValue converts the input to the JSON-compatible value its declared
// kind calls for: float64 for numbers, bool for checkboxes, string otherwise.
func ExtractValue(in Input) (any, error) {
	switch in.Kind {
	case InputNumber:
		n, err := strconv.ParseFloat(in.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", in.Value)
		}
		return n, nil
	case InputCheckbox:
		return in.Checked, nil
	default:
		return in.Value, nil
	}
}
