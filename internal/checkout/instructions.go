package checkout

import (
	"strings"

	"handmade-market/internal/order"
)

var instructionTemplates = map[order.PaymentMethod][]string{
	order.PaymentCOD: {
		"Your order will be shipped to the address you entered",
		"Keep {{amount}} in cash ready when the courier arrives",
		"Pay the courier directly and ask for a receipt",
	},
	order.PaymentOnline: {
		"Payment of {{amount}} has been received",
		"Quote reference {{reference}} if you contact the seller about this order",
	},
}

type InstructionVars map[string]string

// Instructions renders the after-checkout steps for method. Unknown
// placeholders are left as they are.
func Instructions(method order.PaymentMethod, vars InstructionVars) []string {
	steps, ok := instructionTemplates[method]
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(steps))
	for _, step := range steps {
		for key, value := range vars {
			step = strings.ReplaceAll(step, "{{"+key+"}}", value)
		}
		out = append(out, step)
	}
	return out
}
