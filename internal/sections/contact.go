package sections

import (
	"github.com/goliatone/go-coopsite/internal/locale"
	"github.com/goliatone/go-coopsite/internal/localized"
)

// ContactDetailsContent is the CMS contact address block.
type ContactDetailsContent struct {
	Heading     localized.Field `json:"heading"`
	Email       localized.Field `json:"email"`
	Phone       localized.Field `json:"phone"`
	Address     localized.Field `json:"address"`
	OfficeHours localized.Field `json:"officeHours"`
}

// ContactDetails is the resolved address block.
type ContactDetails struct {
	Heading     string `json:"heading"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	OfficeHours string `json:"officeHours"`
}

// BuildContactDetails resolves the contact address block.
func BuildContactDetails(remote *ContactDetailsContent, r Resolver) ContactDetails {
	fallback := contactDetailsDefaults.For(r.Lang())
	if remote == nil {
		return fallback
	}
	return ContactDetails{
		Heading:     r.String(remote.Heading, fallback.Heading),
		Email:       r.String(remote.Email, fallback.Email),
		Phone:       r.String(remote.Phone, fallback.Phone),
		Address:     r.String(remote.Address, fallback.Address),
		OfficeHours: r.String(remote.OfficeHours, fallback.OfficeHours),
	}
}

// ContactFormContent holds the CMS form labels.
type ContactFormContent struct {
	Heading            localized.Field `json:"heading"`
	NameLabel          localized.Field `json:"nameLabel"`
	EmailLabel         localized.Field `json:"emailLabel"`
	MessageLabel       localized.Field `json:"messageLabel"`
	SubmitLabel        localized.Field `json:"submitLabel"`
	SuccessMessage     localized.Field `json:"successMessage"`
	ErrorMessage       localized.Field `json:"errorMessage"`
	UnavailableMessage localized.Field `json:"unavailableMessage"`
}

// ContactForm holds the resolved form labels.
type ContactForm struct {
	Heading            string `json:"heading"`
	NameLabel          string `json:"nameLabel"`
	EmailLabel         string `json:"emailLabel"`
	MessageLabel       string `json:"messageLabel"`
	SubmitLabel        string `json:"submitLabel"`
	SuccessMessage     string `json:"successMessage"`
	ErrorMessage       string `json:"errorMessage"`
	UnavailableMessage string `json:"unavailableMessage"`
}

// BuildContactForm resolves the contact form labels.
func BuildContactForm(remote *ContactFormContent, r Resolver) ContactForm {
	fallback := contactFormDefaults.For(r.Lang())
	if remote == nil {
		return fallback
	}
	return ContactForm{
		Heading:            r.String(remote.Heading, fallback.Heading),
		NameLabel:          r.String(remote.NameLabel, fallback.NameLabel),
		EmailLabel:         r.String(remote.EmailLabel, fallback.EmailLabel),
		MessageLabel:       r.String(remote.MessageLabel, fallback.MessageLabel),
		SubmitLabel:        r.String(remote.SubmitLabel, fallback.SubmitLabel),
		SuccessMessage:     r.String(remote.SuccessMessage, fallback.SuccessMessage),
		ErrorMessage:       r.String(remote.ErrorMessage, fallback.ErrorMessage),
		UnavailableMessage: r.String(remote.UnavailableMessage, fallback.UnavailableMessage),
	}
}

var contactDetailsDefaults = Defaults[ContactDetails]{
	locale.English: {
		Heading:     "Visit or call us",
		Email:       "hello@stroomkring.coop",
		Phone:       "+31 20 123 4567",
		Address:     "Molenweg 12, 1011 AB Amsterdam",
		OfficeHours: "Tuesday and Thursday, 10:00 to 16:00",
	},
	locale.Dutch: {
		Heading:     "Kom langs of bel ons",
		Email:       "hallo@stroomkring.coop",
		Phone:       "+31 20 123 4567",
		Address:     "Molenweg 12, 1011 AB Amsterdam",
		OfficeHours: "Dinsdag en donderdag, 10:00 tot 16:00",
	},
}

var contactFormDefaults = Defaults[ContactForm]{
	locale.English: {
		Heading:            "Send us a message",
		NameLabel:          "Name",
		EmailLabel:         "Email address",
		MessageLabel:       "Your message",
		SubmitLabel:        "Send",
		SuccessMessage:     "Thank you! We will get back to you soon.",
		ErrorMessage:       "Something went wrong sending your message. Please try again later.",
		UnavailableMessage: "The contact form is temporarily unavailable. Please email us instead.",
	},
	locale.Dutch: {
		Heading:            "Stuur ons een bericht",
		NameLabel:          "Naam",
		EmailLabel:         "E-mailadres",
		MessageLabel:       "Je bericht",
		SubmitLabel:        "Versturen",
		SuccessMessage:     "Bedankt! We nemen snel contact met je op.",
		ErrorMessage:       "Er ging iets mis bij het versturen. Probeer het later opnieuw.",
		UnavailableMessage: "Het contactformulier is tijdelijk niet beschikbaar. Mail ons gerust.",
	},
}
