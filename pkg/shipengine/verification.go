package shipengine

import "strings"

// VerificationStatus is the outcome class of an address validation.
type VerificationStatus string

const (
	StatusVerified   VerificationStatus = "verified"
	StatusUnverified VerificationStatus = "unverified"
	StatusWarning    VerificationStatus = "warning"
	StatusError      VerificationStatus = "error"
)

var verificationStatusMessages = map[VerificationStatus]string{
	StatusVerified:   "Address was successfully verified.",
	StatusUnverified: "Address validation was not validated against the database because pre-validation failed.",
	StatusWarning:    "The address was validated, but the address should be double checked.",
	StatusError:      "The address could not be validated with any degree of certainty against the database.",
}

// Message returns the fixed human sentence for the status.
func (s VerificationStatus) Message() string {
	return verificationStatusMessages[s]
}

// verificationReasons translates the known validation error codes to human
// readable reasons. Codes outside the table read "Unknown Failure".
var verificationReasons = map[string]string{
	"a1001": "The country is not supported.",
	"a1002": "Parts of the address could not be verified.",
	"a1003": "Some fields were modified while verifying the address.",
	"a1004": "The address was found but appears incomplete.",
	"a1005": "The address failed pre-validation.",
}

const unknownVerificationReason = "Unknown Failure"

func translateVerificationCode(code string) string {
	if reason, ok := verificationReasons[code]; ok {
		return reason
	}
	return unknownVerificationReason
}

// identifyFieldFromMessage guesses which canonical address field a validation
// message refers to by substring search. Returns "unknown" when no field name
// appears in the message.
func identifyFieldFromMessage(message string) string {
	for _, name := range addressFieldNames {
		if strings.Contains(message, name) {
			return name
		}
	}
	return "unknown"
}

// AddressMessageDocument is the wire shape of one validation message.
type AddressMessageDocument struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// VerificationResultDocument is the wire shape of one validation result.
// MatchedAddress is nil unless the response carried a non-null object.
type VerificationResultDocument struct {
	Status         VerificationStatus       `json:"status"`
	Messages       []AddressMessageDocument `json:"messages"`
	MatchedAddress *AddressDocument         `json:"matched_address"`
}

// AddressMessage is one diagnostic attached to a verification result, with
// the error code translated to a reason and the offending field guessed from
// the message text.
type AddressMessage struct {
	Reason  string
	Message string
	Type    string
	Field   string
}

func (m AddressMessage) String() string {
	return "Error: " + m.Reason + ". Message: " + m.Message
}

// VerificationResult is the outcome of validating a single address.
type VerificationResult struct {
	Status         VerificationStatus
	Messages       []AddressMessage
	MatchedAddress *Address
}

// Verified reports whether the address passed verification.
func (r *VerificationResult) Verified() bool {
	return r.Status == StatusVerified
}

// StatusMessage returns the human sentence describing the status.
func (r *VerificationResult) StatusMessage() string {
	return r.Status.Message()
}

func parseVerificationResult(doc VerificationResultDocument) *VerificationResult {
	result := &VerificationResult{Status: doc.Status}
	for _, msg := range doc.Messages {
		result.Messages = append(result.Messages, AddressMessage{
			Reason:  translateVerificationCode(msg.Code),
			Message: msg.Message,
			Type:    msg.Type,
			Field:   identifyFieldFromMessage(msg.Message),
		})
	}
	if doc.MatchedAddress != nil {
		matched := addressFromDocument(*doc.MatchedAddress)
		result.MatchedAddress = &matched
	}
	return result
}
