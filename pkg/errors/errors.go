package errors

import (
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Code is the type representing a namespace error code.
type Code[MT any] struct {
	Code uint16
	Name string
}

// New creates a new error with the given code and the message
func (c Code[MT]) New(msg string, args ...any) TypedError[MT] {
	return &ErrorImpl[MT]{
		code:  c,
		cause: fmt.Errorf(msg, args...),
	}
}

// Wrap creates a new Error with the given code and the cause error
func (c Code[MT]) Wrap(cause error) TypedError[MT] {
	return &ErrorImpl[MT]{
		code:  c,
		cause: cause,
	}
}

// Is reports whether any error in err's chain carries this code.
func (c Code[MT]) Is(err error) bool {
	var typed Error
	if !errors.As(err, &typed) {
		return false
	}
	return typed.Code() == c.Code
}

func (c Code[MT]) String() string {
	return fmt.Sprintf("%s (%d)", c.Name, c.Code)
}

type Error interface {
	error
	Log() *log.Entry
	Code() uint16
	CodeName() string
	Metadata() map[string]string
}

type TypedError[MT any] interface {
	Error
	WithMetadata(MT) TypedError[MT]
}

// ErrorImpl is the default concrete implementation of TypedError.
type ErrorImpl[MT any] struct {
	code     Code[MT]
	cause    error
	metadata MT
}

func (e *ErrorImpl[MT]) Log() *log.Entry {
	return log.WithField("name", e.code.Name).
		WithField("code", e.code.Code).
		WithField("metadata", e.metadata)
}

func (e *ErrorImpl[MT]) Metadata() map[string]string {
	// convert any metadata to map[string]string
	metadata := make(map[string]string)
	buf, err := json.Marshal(e.metadata)
	if err == nil {
		var genericMap map[string]any
		if err := json.Unmarshal(buf, &genericMap); err == nil {
			for k, v := range genericMap {
				vStr := ""
				if v != nil {
					vStr = fmt.Sprintf("%v", v)
				}
				metadata[k] = vStr
			}
		}
	}
	return metadata
}

func (e *ErrorImpl[MT]) Code() uint16 {
	return e.code.Code
}

func (e *ErrorImpl[MT]) CodeName() string {
	return e.code.Name
}

// Error() implements the error interface.
func (e *ErrorImpl[MT]) Error() string {
	return fmt.Sprintf("%s: %s", e.code.String(), e.cause.Error())
}

func (e *ErrorImpl[MT]) Unwrap() error {
	return e.cause
}

func (e *ErrorImpl[MT]) WithMetadata(metadata MT) TypedError[MT] {
	e.metadata = metadata
	return e
}

type AssetSymbolMetadata struct {
	Symbol string `json:"symbol"`
}

type AssetIdMetadata struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

type AmountMetadata struct {
	Amount string `json:"amount"`
}

type CallMetadata struct {
	Call string `json:"call"`
}

type EncodingMetadata struct {
	Call     string `json:"call,omitempty"`
	ArgIndex int    `json:"arg_index"`
}

type TypeMetadata struct {
	TypeName string `json:"type_name"`
}

type TypeMismatchMetadata struct {
	TypeName string `json:"type_name"`
	Expected string `json:"expected"`
	Got      string `json:"got"`
}

type DuplicateAssetMetadata struct {
	ID     uint32 `json:"id"`
	Symbol string `json:"symbol"`
}

type AssetDefinitionMetadata struct {
	ID       uint32 `json:"id"`
	Symbol   string `json:"symbol"`
	Category string `json:"category"`
}

type SectionMetadata struct {
	Section string `json:"section"`
}

var INTERNAL_ERROR = Code[map[string]any]{0, "INTERNAL_ERROR"}
var DERIVES_NOT_INSTALLED = Code[SectionMetadata]{1, "DERIVES_NOT_INSTALLED"}
var UNKNOWN_ASSET_SYMBOL = Code[AssetSymbolMetadata]{2, "UNKNOWN_ASSET_SYMBOL"}
var INVALID_ASSET_ID = Code[AssetIdMetadata]{3, "INVALID_ASSET_ID"}
var INVALID_AMOUNT = Code[AmountMetadata]{4, "INVALID_AMOUNT"}
var CALL_NOT_FOUND = Code[CallMetadata]{5, "CALL_NOT_FOUND"}
var ENCODING_FAILED = Code[EncodingMetadata]{6, "ENCODING_FAILED"}
var UNKNOWN_TYPE = Code[TypeMetadata]{7, "UNKNOWN_TYPE"}
var TYPE_MISMATCH = Code[TypeMismatchMetadata]{8, "TYPE_MISMATCH"}
var DUPLICATE_ASSET = Code[DuplicateAssetMetadata]{9, "DUPLICATE_ASSET"}

var SECTION_ALREADY_INSTALLED = Code[SectionMetadata]{
	10,
	"SECTION_ALREADY_INSTALLED",
}

var INVALID_ASSET_DEFINITION = Code[AssetDefinitionMetadata]{
	11,
	"INVALID_ASSET_DEFINITION",
}
