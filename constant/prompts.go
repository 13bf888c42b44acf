package constant

// prompts for the classification fallback and final response generation

const (
	// ClassifySystemPrompt drives the four-way intent classification. The model
	// must answer with a single JSON object; everything around it is ignored.
	ClassifySystemPrompt = `You are a query classifier for a video surveillance assistant.
Classify the user message into exactly one query_type:
- "variphi": questions about the company Variphi (founder, mission, services, history)
- "nvr": questions about NVR streaming, recording, playback, codecs, bitrates or storage
- "general": greetings, thanks, goodbyes and other small talk
- "events": everything about camera events, detections and annotations (the default)

Respond with ONE JSON object and nothing else:
{"query_type":"general|nvr|variphi|events","status":"","resolution_status":"","admin_client_id":"","viewer_client_id":"","camera_detail_id":"","date_range":"none|today|yesterday|last_7_days|custom","from_date":"","to_date":"","size":50,"from":0,"sort_field":"capture_time","sort_order":"desc"}

For "events", fill in only the filters the user asked for; leave the rest at
their defaults. Dates must be ISO 8601. Do not invent filter values.`

	// AnswerSystemPrompt turns a context block into the final user-facing reply.
	AnswerSystemPrompt = `You are a helpful assistant for a video surveillance platform.
Answer the user's question using ONLY the context provided. Be concise and
factual. If the context says nothing was found, say so politely.`

	// AnswerUserPromptTemplate: question first, then the shaped context block.
	AnswerUserPromptTemplate = `Question: %s

Context:
%s`
)

// fixed replies for the general intent, keyed by matched greeting keyword group
const (
	GeneralReplyGreeting = "Hello! I can help you with camera events, NVR streaming and recording questions, or information about Variphi. What would you like to know?"
	GeneralReplyThanks   = "You're welcome! Let me know if there is anything else I can help you with."
	GeneralReplyBye      = "Goodbye! Feel free to come back whenever you have more questions."

	// ApologyReply is used when response generation itself fails; classification
	// and search succeeded, so the request is still recorded as answered.
	ApologyReply = "Sorry, I could not generate a response right now. Please try again."
)

// fixed sentences when a similarity lookup returns nothing
const (
	NvrNothingFound     = "No NVR documentation matched the question."
	VariphiNothingFound = "No Variphi information matched the question."
)
