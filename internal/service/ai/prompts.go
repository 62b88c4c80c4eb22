package ai

import (
	"bytes"
	"strings"
	"text/template"
)

// Prompt templates are plain data. All conversational decisioning lives in the
// template text handed to the model; the surrounding Go code only substitutes
// state and parses the YES/NO answer. Edit the text freely without touching
// the controller.

const customerIntroTemplate = `You are {{.PersonaName}}. {{.PersonaNeeds}}
Start the conversation by introducing yourself by name and expressing your needs and what you are looking for in a new mobile tariff plan. Do NOT provide advice or recommendations. Keep your response concise and natural.`

const agentTurnTemplate = `Analyze the conversation history and respond as a Deutsche Telekom tariff advisor.

Conversation History:
{{.ConversationHistory}}

Available Tariff Plans:
{{.Tariffs}}

Customer: {{.Persona}}

IMPORTANT INSTRUCTIONS:
1. FIRST, directly address the customer's most recent question or concern
2. ALWAYS provide information about specific features when asked (e.g., international calls)
3. LISTEN CAREFULLY to customer requirements and respond accordingly
4. Recommend plans that match ALL of the customer's stated requirements
5. Your primary goal is customer satisfaction, but you should also aim to maximize revenue when possible

If the customer repeatedly asks about the same feature (e.g., international calls):
- Explicitly acknowledge their interest in that feature
- Recommend the International Calls add-on with an appropriate base plan
- Explain how this combination addresses their specific needs

Your goal is to be helpful, responsive, and increase revenue by matching customer needs with appropriate plans and add-ons.`

const customerTurnTemplate = `Respond as a real customer named {{.PersonaName}} with these needs: {{.PersonaNeeds}}

Conversation History:
{{.ConversationHistory}}

Deutsche Telekom Agent just said: {{.BotMessage}}

IMPORTANT INSTRUCTIONS:
1. Respond ONLY as a real customer in a SINGLE, BRIEF response
2. DO NOT provide advice or recommendations
3. DO NOT pretend to be a bot or advisor
4. ONLY express your own needs, preferences, or questions
5. PROGRESS THE CONVERSATION - DO NOT repeat your previous messages
6. If the agent has recommended a specific plan multiple times, either:
   a. Ask specific questions about that plan's features
   b. Compare it to another plan you're interested in
   c. Express concerns about price, features, or other aspects
   d. Make a decision using CLEAR language like "I want to purchase the [plan name]" or "I choose the [plan name]"
7. Keep your response under 100 words
8. Make your response DIFFERENT from your previous messages: {{.PrevCustomerMessages}}

Your response should be natural, focused on your needs as {{.PersonaName}}, and avoid any technical jargon.`

const terminatorCheckTemplate = `ANALYZE if the customer has DEFINITIVELY chosen a plan in this message:

Customer: {{.CustomerMessage}}

IMPORTANT: This is a CRITICAL decision that determines if the conversation ends. Be EXTREMELY STRICT.

FIRST CHECK: If the message contains a question mark (?), IMMEDIATELY respond with NO. A question ALWAYS means the customer is still gathering information and has NOT made a final decision.

A customer has chosen a plan ONLY if they use EXACT purchase language such as:
- "I want to purchase the [plan name]"
- "I choose the [plan name]"
- "I'll take the [plan name]"
- "I want to buy the [plan name]"
- "Sign me up for the [plan name]"

The following are NOT plan selections (respond with NO):
- ANY message containing a question mark (?)
- ANY questions about a plan (even if they mention the plan name)
- Asking for confirmation about features or coverage
- Asking for more information
- Comparing plans
- Saying a plan "sounds good" or they're "interested in" a plan
- Mentioning a plan without explicit purchase intent
- Conditional statements ("If X, then I might choose Y")

EXAMPLES of what is NOT a selection:
- "Could you tell me more about the Business 100GB plan?"
- "Does the Business 100GB plan include international calls?"
- "I'm interested in the Business 100GB plan"
- "The Business 100GB plan sounds good"

The customer MUST:
1. Name a specific plan
2. Use EXPLICIT purchase language
3. Make an UNCONDITIONAL statement of choice
4. NOT include ANY question marks in their message

If there is ANY doubt whatsoever, your answer MUST be NO.

If the customer has explicitly chosen a plan using CLEAR purchase language AND there are NO question marks in the message, respond with: YES: [exact plan name]
Otherwise respond with: NO`

const confirmationTemplate = `Generate a warm, friendly confirmation message for a customer who has chosen the {{.PlanName}} plan.

The message should:
1. Thank them for choosing Deutsche Telekom
2. Confirm their selection of the {{.PlanName}} plan
3. Briefly mention that a customer service representative will contact them soon to complete the setup
4. Welcome them to the Deutsche Telekom family

Keep the message concise, friendly, and professional.`

var (
	customerIntroTmpl   = template.Must(template.New("customer-intro").Parse(customerIntroTemplate))
	agentTurnTmpl       = template.Must(template.New("agent-turn").Parse(agentTurnTemplate))
	customerTurnTmpl    = template.Must(template.New("customer-turn").Parse(customerTurnTemplate))
	terminatorCheckTmpl = template.Must(template.New("terminator-check").Parse(terminatorCheckTemplate))
	confirmationTmpl    = template.Must(template.New("confirmation").Parse(confirmationTemplate))
)

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CustomerIntroPrompt asks for the opening customer message.
func CustomerIntroPrompt(personaName, personaNeeds string) (string, error) {
	return render(customerIntroTmpl, map[string]string{
		"PersonaName": personaName,
		"PersonaNeeds": personaNeeds,
	})
}

// AgentTurnPrompt asks for the next agent message given the full transcript
// and the tariff reference text.
func AgentTurnPrompt(conversationHistory, tariffs, persona string) (string, error) {
	return render(agentTurnTmpl, map[string]string{
		"ConversationHistory": conversationHistory,
		"Tariffs":             tariffs,
		"Persona":             persona,
	})
}

// CustomerTurnPrompt asks for the next customer message. prevCustomerMessages
// should hold the customer's own last one or two messages; they are echoed
// back to discourage repetition.
func CustomerTurnPrompt(personaName, personaNeeds, conversationHistory, botMessage string, prevCustomerMessages []string) (string, error) {
	return render(customerTurnTmpl, map[string]string{
		"PersonaName":          personaName,
		"PersonaNeeds":         personaNeeds,
		"ConversationHistory":  conversationHistory,
		"BotMessage":           botMessage,
		"PrevCustomerMessages": strings.Join(prevCustomerMessages, " | "),
	})
}

// TerminatorCheckPrompt asks for a strict YES/NO verdict on the latest
// customer message.
func TerminatorCheckPrompt(customerMessage string) (string, error) {
	return render(terminatorCheckTmpl, map[string]string{
		"CustomerMessage": customerMessage,
	})
}

// ConfirmationPrompt asks for the short closing message for a selected plan.
func ConfirmationPrompt(planName string) (string, error) {
	return render(confirmationTmpl, map[string]string{
		"PlanName": planName,
	})
}
