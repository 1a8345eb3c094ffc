package domain

// Transport-neutral inbound/outbound message values. The core never depends
// on platform message objects; the input adapter converts webhook payloads
// into these before anything else runs.

type (
	// Update struct - One inbound webhook update
	Update struct {
		UpdateID int64
		Message  *IncomingMessage
	}

	// IncomingMessage struct - A message sent to the bot
	IncomingMessage struct {
		MessageID int64
		From      UserRef
		ChatID    int64
		Text      string
		Video     *VideoRef
	}

	// UserRef struct - The sending user
	UserRef struct {
		ID       int64
		Username string
	}

	// VideoRef struct - Opaque video handle plus original filename
	VideoRef struct {
		FileID   string
		FileName string
	}

	// Reply struct - Outgoing plain-text reply
	Reply struct {
		ChatID int64
		Text   string
	}
)

// Prompt type - what the transport should ask or tell the user next.
// The excluded transport layer owns localization; the core only names prompts.
type Prompt string

const (
	// PromptChooseCategory - ask for one of the catalog categories
	PromptChooseCategory Prompt = "choose_category"
	// PromptEnterTitle - ask for the card title
	PromptEnterTitle Prompt = "enter_title"
	// PromptEnterDescription - ask for the card description
	PromptEnterDescription Prompt = "enter_description"
	// PromptSendVideo - ask for the demo video
	PromptSendVideo Prompt = "send_video"
	// PromptConfirm - ask to confirm or cancel the accumulated draft
	PromptConfirm Prompt = "confirm"
	// PromptInvalidCategory - category outside the closed set, re-ask
	PromptInvalidCategory Prompt = "invalid_category"
	// PromptInvalidInput - step input rejected, re-ask
	PromptInvalidInput Prompt = "invalid_input"
	// PromptSaved - workflow committed
	PromptSaved Prompt = "saved"
	// PromptCancelled - workflow discarded
	PromptCancelled Prompt = "cancelled"
	// PromptExpired - session timed out, workflow discarded
	PromptExpired Prompt = "expired"
)

// WorkflowResult struct - Outcome of one Advance call
type WorkflowResult struct {
	State  WorkflowState
	Prompt Prompt
	CardID int // set when a commit produced or touched a card
}
