package member

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const duplicateEntryMessage = "Duplicate entry: a member with these details already exists."

// DuplicateKeyError reports a uniqueness violation. Field and Value are empty when the
// driver error could not be parsed.
type DuplicateKeyError struct {
	Field string
	Value string
	cause error
}

func (e *DuplicateKeyError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", memberDuplicateKey, e.cause)
	}
	return fmt.Sprintf("%s: %s=%q", memberDuplicateKey, e.Field, e.Value)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

// ClientMessage never includes the raw driver text.
func (e *DuplicateKeyError) ClientMessage() string {
	switch e.Field {
	case "":
		return duplicateEntryMessage
	case "mId":
		return fmt.Sprintf("Member ID '%s' already exists. Please use a different member ID.", e.Value)
	default:
		return fmt.Sprintf("A member with %s '%s' already exists.", e.Field, e.Value)
	}
}

func (e *DuplicateKeyError) ClientFields() []string {
	if e.Field == "" {
		return nil
	}
	return []string{e.Field}
}

// Server codes for unique index violations.
var mongoDuplicateCodes = map[int]bool{11000: true, 11001: true, 12582: true}

var (
	// E11000 duplicate key error collection: gym.members index: mId_1 dup key: { mId: "001" }
	mongoDupKeyPattern   = regexp.MustCompile(`dup key: \{ ?([\w.]*): (?:"((?:[^"\\]|\\.)*)"|([^,}\s]+))`)
	mongoDupIndexPattern = regexp.MustCompile(`index: (\S+)`)
	sqliteUniquePattern  = regexp.MustCompile(`UNIQUE constraint failed: (?:\w+\.)?(\w+)`)
	pgDetailPattern      = regexp.MustCompile(`Key \(([^)]+)\)=\((.*)\) already exists`)
	oracleUniquePattern  = regexp.MustCompile(`ORA-00001: unique constraint \((?:\w+\.)?(\w+)\)`)
)

// column and index names mapped back to API field names
var uniqueFieldNames = map[string]string{
	"mid":             "mId",
	"m_id":            "mId",
	"mid_1":           "mId",
	"idx_member_m_id": "mId",
	"mobile":          "mobile",
	"name":            "name",
	"expirydate":      "expiryDate",
	"expiry_date":     "expiryDate",
}

func apiField(raw string) string {
	key := strings.ToLower(strings.Trim(raw, `"`))
	if name, ok := uniqueFieldNames[key]; ok {
		return name
	}
	return raw
}

// TranslateDuplicateKey converts a store uniqueness violation into a *DuplicateKeyError.
// It returns nil when err is not a uniqueness violation.
func TranslateDuplicateKey(err error) *DuplicateKeyError {
	if err == nil {
		return nil
	}

	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return dup
	}

	if mongo.IsDuplicateKeyError(err) {
		return translateMongo(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if m := pgDetailPattern.FindStringSubmatch(pgErr.Detail); m != nil {
			return &DuplicateKeyError{Field: apiField(m[1]), Value: m[2], cause: err}
		}
		return &DuplicateKeyError{Field: knownField(pgErr.ConstraintName), cause: err}
	}

	msg := err.Error()
	if m := sqliteUniquePattern.FindStringSubmatch(msg); m != nil {
		return &DuplicateKeyError{Field: apiField(m[1]), cause: err}
	}
	if m := oracleUniquePattern.FindStringSubmatch(msg); m != nil {
		return &DuplicateKeyError{Field: knownField(m[1]), cause: err}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateKeyError{cause: err}
	}

	return nil
}

// knownField resolves an index or constraint name, or returns "" if it is not ours.
func knownField(name string) string {
	if field, ok := uniqueFieldNames[strings.ToLower(name)]; ok {
		return field
	}
	return ""
}

func translateMongo(err error) *DuplicateKeyError {
	for _, msg := range mongoDuplicateMessages(err) {
		if field, value, ok := parseMongoKeyValue(msg.raw); ok {
			return &DuplicateKeyError{Field: field, Value: value, cause: err}
		}

		m := mongoDupKeyPattern.FindStringSubmatch(msg.text)
		if m == nil {
			continue
		}
		value := m[2]
		if value == "" {
			value = m[3]
		}

		if m[1] != "" {
			return &DuplicateKeyError{Field: apiField(m[1]), Value: value, cause: err}
		}

		// legacy servers print "dup key: { : "001" }"; the index name identifies the field
		if idx := mongoDupIndexPattern.FindStringSubmatch(msg.text); idx != nil {
			name := idx[1][strings.LastIndex(idx[1], "$")+1:]
			if field := knownField(name); field != "" {
				return &DuplicateKeyError{Field: field, Value: value, cause: err}
			}
		}
	}
	return &DuplicateKeyError{cause: err}
}

type mongoDuplicateMessage struct {
	text string
	raw  bson.Raw
}

func mongoDuplicateMessages(err error) []mongoDuplicateMessage {
	var messages []mongoDuplicateMessage

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if mongoDuplicateCodes[we.Code] {
				messages = append(messages, mongoDuplicateMessage{text: we.Message, raw: we.Raw})
			}
		}
	}

	var bulkErr mongo.BulkWriteException
	if errors.As(err, &bulkErr) {
		for _, we := range bulkErr.WriteErrors {
			if mongoDuplicateCodes[we.Code] {
				messages = append(messages, mongoDuplicateMessage{text: we.Message, raw: we.Raw})
			}
		}
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && mongoDuplicateCodes[int(cmdErr.Code)] {
		messages = append(messages, mongoDuplicateMessage{text: cmdErr.Message, raw: cmdErr.Raw})
	}

	if len(messages) == 0 {
		messages = append(messages, mongoDuplicateMessage{text: err.Error()})
	}
	return messages
}

// parseMongoKeyValue reads the keyValue document that servers 4.2+ attach to E11000 errors.
func parseMongoKeyValue(raw bson.Raw) (string, string, bool) {
	if len(raw) == 0 {
		return "", "", false
	}

	keyValue, err := raw.LookupErr("keyValue")
	if err != nil || keyValue.Type != bson.TypeEmbeddedDocument {
		return "", "", false
	}

	elements, err := keyValue.Document().Elements()
	if err != nil || len(elements) == 0 {
		return "", "", false
	}

	value := elements[0].Value()
	str, ok := value.StringValueOK()
	if !ok {
		str = value.String()
	}
	return apiField(elements[0].Key()), str, true
}
