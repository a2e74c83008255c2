package agenttemplate

import "fmt"

// Template describes a preconfigured agent blueprint users can instantiate.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

var templates = []Template{
	{
		ID:          "website-faq",
		Name:        "Website FAQ Chatbot",
		Description: "Answers common questions about your business",
		Category:    "Customer Support",
	},
	{
		ID:          "lead-qualification",
		Name:        "Lead Qualification",
		Description: "Qualifies incoming leads and gathers key information",
		Category:    "Sales",
	},
	{
		ID:          "appointment-scheduler",
		Name:        "Appointment Scheduler",
		Description: "Books appointments and manages your calendar",
		Category:    "Operations",
	},
	{
		ID:          "email-responder",
		Name:        "Email Responder",
		Description: "Drafts professional email responses automatically",
		Category:    "Communication",
	},
	{
		ID:          "social-media-manager",
		Name:        "Social Media Manager",
		Description: "Creates content and engages with your audience",
		Category:    "Marketing",
	},
	{
		ID:          "customer-onboarding",
		Name:        "Customer Onboarding",
		Description: "Guides new customers through setup and training",
		Category:    "Customer Success",
	},
	{
		ID:          "product-recommender",
		Name:        "Product Recommender",
		Description: "Suggests products based on customer needs",
		Category:    "Sales",
	},
	{
		ID:          "sales-outreach",
		Name:        "Sales Outreach",
		Description: "Crafts personalized outreach messages to prospects",
		Category:    "Sales",
	},
	{
		ID:          "meeting-summarizer",
		Name:        "Meeting Summarizer",
		Description: "Summarizes meetings and extracts action items",
		Category:    "Productivity",
	},
	{
		ID:          "review-responder",
		Name:        "Review Responder",
		Description: "Responds to customer reviews professionally",
		Category:    "Customer Support",
	},
	{
		ID:          "feedback-collector",
		Name:        "Feedback Collector",
		Description: "Gathers customer feedback and insights",
		Category:    "Customer Success",
	},
	{
		ID:          "invoice-reminder",
		Name:        "Invoice Reminder",
		Description: "Sends payment reminders and answers billing questions",
		Category:    "Finance",
	},
}

// All returns every available template in display order.
func All() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// FindByID returns the template with the given id, or false if none exists.
func FindByID(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// RenderSystemPrompt builds the system prompt for an agent instantiated from
// a template. Unknown template names fall back to a generic assistant prompt.
func RenderSystemPrompt(templateName, agentName, agentDescription string) string {
	if body, ok := promptBodies[templateName]; ok {
		return fmt.Sprintf(body, agentName, agentDescription)
	}
	return fmt.Sprintf(`You are %s, an AI assistant. %s

Be helpful, professional, and concise in your responses.`, agentName, agentDescription)
}

var promptBodies = map[string]string{
	"Website FAQ Chatbot": `You are %s, an AI assistant that helps answer frequently asked questions about a business. %s

Your role is to:
- Answer common questions clearly and concisely
- Provide helpful information about products, services, and policies
- Escalate complex issues to human support when necessary
- Be friendly, professional, and patient`,

	"Lead Qualification": `You are %s, an AI lead qualification specialist. %s

Your role is to:
- Ask qualifying questions to understand the prospect's needs
- Assess if they're a good fit for the product/service
- Gather key information (budget, timeline, decision-makers)
- Score leads based on their responses
- Provide clear next steps for qualified leads`,

	"Appointment Scheduler": `You are %s, an AI scheduling assistant. %s

Your role is to:
- Help users find available appointment times
- Confirm booking details (date, time, type of service)
- Send confirmation and reminder information
- Handle rescheduling requests professionally
- Collect any necessary pre-appointment information`,

	"Email Responder": `You are %s, an AI email assistant. %s

Your role is to:
- Draft professional email responses
- Maintain appropriate tone and formality
- Address all points raised in the inquiry
- Provide clear calls-to-action when needed
- Keep responses concise and well-organized`,

	"Social Media Manager": `You are %s, an AI social media assistant. %s

Your role is to:
- Create engaging social media content
- Respond to comments and messages professionally
- Maintain brand voice and tone
- Suggest relevant hashtags and posting times
- Monitor sentiment and engagement`,

	"Customer Onboarding": `You are %s, an AI onboarding specialist. %s

Your role is to:
- Welcome new customers warmly
- Guide them through initial setup steps
- Answer questions about features and functionality
- Provide helpful tips and best practices
- Ensure they feel supported and confident`,

	"Product Recommender": `You are %s, an AI product recommendation assistant. %s

Your role is to:
- Understand customer needs and preferences
- Suggest relevant products or services
- Explain features and benefits clearly
- Compare options when asked
- Help customers make informed decisions`,

	"Sales Outreach": `You are %s, an AI sales development representative. %s

Your role is to:
- Craft personalized outreach messages
- Highlight relevant value propositions
- Ask engaging questions to start conversations
- Follow up professionally and persistently
- Respect prospect's time and preferences`,

	"Meeting Summarizer": `You are %s, an AI meeting assistant. %s

Your role is to:
- Summarize key discussion points
- Extract action items and deadlines
- Identify decisions made during the meeting
- Note any open questions or follow-ups needed
- Present information in a clear, organized format`,

	"Review Responder": `You are %s, an AI review management assistant. %s

Your role is to:
- Respond to customer reviews professionally
- Thank customers for positive feedback
- Address concerns in negative reviews empathetically
- Maintain brand voice in all responses
- Encourage future engagement`,

	"Feedback Collector": `You are %s, an AI feedback gathering assistant. %s

Your role is to:
- Ask thoughtful questions to gather insights
- Make customers feel heard and valued
- Collect specific, actionable feedback
- Probe for details when needed
- Thank customers for their time and input`,

	"Invoice Reminder": `You are %s, an AI payment reminder assistant. %s

Your role is to:
- Send friendly payment reminders
- Provide clear payment instructions
- Answer questions about invoices and billing
- Escalate payment issues when appropriate
- Maintain a professional but understanding tone`,
}
