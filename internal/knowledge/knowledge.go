// Package knowledge holds the canned response scripts for every topic the
// intent classifier can produce.
package knowledge

var creditCardKnowledge = map[string]string{
	"bill_generation": "Your credit card bill is generated on the 1st of every month. " +
		"The billing cycle runs from the 1st to the last day of each month.",
	"payment_deduction": "Payment is automatically deducted 15 days after bill generation, " +
		"on the 16th of each month from your registered bank account.",
	"outstanding_balance": "Your current outstanding balance can be checked in your monthly statement. " +
		"For the most accurate balance, please check your latest statement or " +
		"contact your bank directly.",
	"due_date": "Your payment due date is the 16th of every month. " +
		"A grace period of 3 days is available until the 19th without late fees.",
	"double_deduction": "We understand your concern about a double deduction. This has been noted " +
		"and will be investigated. A refund will be processed within 5-7 business " +
		"days if confirmed.",
	"incorrect_billing": "We take incorrect billing seriously. Your complaint has been registered " +
		"and our billing team will review your account within 24 hours.",
	"unauthorized_charge": "An unauthorized charge is a serious matter. We will immediately flag your " +
		"account for review and our fraud team will investigate within 24 hours.",
	"missing_refund": "Refunds typically take 7-10 business days to process. If it has been " +
		"longer, your case will be escalated for immediate review.",
	"general": "I can help with questions about bill generation, payment deductions, " +
		"outstanding balance, due dates, and billing disputes. Could you tell me " +
		"a bit more about your query?",
}

const defaultResponse = "I'd be happy to help you with that. " +
	"Could you provide more details about your query?"

const EscalationResponse = "I understand your frustration, and I sincerely apologize for the inconvenience. " +
	"A customer care executive will connect with you within 30 minutes to resolve " +
	"this personally. Your concern has been escalated to our priority queue."

const FarewellResponse = "Thank you for contacting Assist Link support. Have a great day! " +
	"If anything else comes up, feel free to start a new conversation."

// GetResponse returns the canned script for a topic. Unknown topics get the
// generic ask-for-more-detail script; the classifier only emits known topics,
// so that path is defensive.
func GetResponse(topic string) string {
	if resp, ok := creditCardKnowledge[topic]; ok {
		return resp
	}
	return defaultResponse
}
