package contact

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-coopsite/internal/locale"
)

const submitMessageType = "coopsite.contact.submit"

// Field limits shared by the command rules and the stored document schema.
const (
	MaxNameLength    = 120
	MinMessageLength = 10
	MaxMessageLength = 5000
)

// SubmitCommand carries one contact form submission.
type SubmitCommand struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	// Language is the page language the form was sent from. Blank means the
	// primary language.
	Language string `json:"language,omitempty"`
}

// Type implements command.Message.
func (SubmitCommand) Type() string { return submitMessageType }

// Validate checks the trimmed field values.
func (cmd SubmitCommand) Validate() error {
	cmd = cmd.normalized()
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Name, validation.Required, validation.Length(1, MaxNameLength)),
		validation.Field(&cmd.Email, validation.Required, is.EmailFormat),
		validation.Field(&cmd.Message, validation.Required, validation.Length(MinMessageLength, MaxMessageLength)),
		validation.Field(&cmd.Language, validation.By(func(value any) error {
			raw, _ := value.(string)
			if raw == "" {
				return nil
			}
			if _, ok := locale.Parse(raw); !ok {
				return validation.NewError("coopsite.contact.language_unsupported", "must be a supported language")
			}
			return nil
		})),
	)
}

func (cmd SubmitCommand) normalized() SubmitCommand {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Email = strings.TrimSpace(cmd.Email)
	cmd.Message = strings.TrimSpace(cmd.Message)
	cmd.Language = strings.TrimSpace(cmd.Language)
	return cmd
}

// FieldErrors flattens the per-field messages of a Validate error, keyed by
// the json field name. Errors of any other shape yield nil.
func FieldErrors(err error) map[string]string {
	var fields validation.Errors
	if !errors.As(err, &fields) {
		return nil
	}
	out := make(map[string]string, len(fields))
	for name, fieldErr := range fields {
		if fieldErr != nil {
			out[name] = fieldErr.Error()
		}
	}
	return out
}
