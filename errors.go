package qpay

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ConfigError reports missing required configuration values. Missing holds
// the name of every absent environment variable.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("qpay: required environment variable(s) not set: %s",
		strings.Join(e.Missing, ", "))
}

// APIError is a non-2xx response from a resource endpoint. Code and Message
// come from the server's error body; when the body carries no machine code
// the HTTP status text is used, and when it carries no message the raw body
// stands in.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RawBody    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("qpay: %s - %s (status %d)", e.Code, e.Message, e.StatusCode)
}

// AuthError is a rejected credential or refresh exchange against the token
// endpoints. It carries the same fields as APIError.
type AuthError struct {
	StatusCode int
	Code       string
	Message    string
	RawBody    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("qpay: authentication failed: %s - %s (status %d)", e.Code, e.Message, e.StatusCode)
}

// AsAPIError returns the *APIError in err's chain, or nil.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// AsAuthError returns the *AuthError in err's chain, or nil.
func AsAuthError(err error) *AuthError {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr
	}
	return nil
}

func newAPIError(statusCode int, body []byte) *APIError {
	code, message := decodeWireError(statusCode, body)
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		RawBody:    string(body),
	}
}

func newAuthError(statusCode int, body []byte) *AuthError {
	code, message := decodeWireError(statusCode, body)
	return &AuthError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		RawBody:    string(body),
	}
}

// decodeWireError extracts the machine code and human message from a QPay
// error body, which is a JSON object with optional "error" and "message"
// fields. Absent fields fall back to the HTTP status text and the raw body.
func decodeWireError(statusCode int, body []byte) (code, message string) {
	var wire struct {
		Code    string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &wire)

	code = wire.Code
	message = wire.Message

	if code == "" {
		code = http.StatusText(statusCode)
		if code == "" {
			code = strconv.Itoa(statusCode)
		}
	}
	if message == "" {
		message = string(body)
	}
	return code, message
}

// QPay error codes, as returned in the "error" field of an error body.
const (
	ErrCodeAccountBankDuplicated              = "ACCOUNT_BANK_DUPLICATED"
	ErrCodeAccountSelectionInvalid            = "ACCOUNT_SELECTION_INVALID"
	ErrCodeAuthenticationFailed               = "AUTHENTICATION_FAILED"
	ErrCodeBankAccountNotFound                = "BANK_ACCOUNT_NOTFOUND"
	ErrCodeBankMCCAlreadyAdded                = "BANK_MCC_ALREADY_ADDED"
	ErrCodeBankMCCNotFound                    = "BANK_MCC_NOT_FOUND"
	ErrCodeCardTerminalNotFound               = "CARD_TERMINAL_NOTFOUND"
	ErrCodeClientNotFound                     = "CLIENT_NOTFOUND"
	ErrCodeClientUsernameDuplicated           = "CLIENT_USERNAME_DUPLICATED"
	ErrCodeCustomerDuplicate                  = "CUSTOMER_DUPLICATE"
	ErrCodeCustomerNotFound                   = "CUSTOMER_NOTFOUND"
	ErrCodeCustomerRegisterInvalid            = "CUSTOMER_REGISTER_INVALID"
	ErrCodeEbarimtCancelNotSupported          = "EBARIMT_CANCEL_NOTSUPPERDED"
	ErrCodeEbarimtNotRegistered               = "EBARIMT_NOT_REGISTERED"
	ErrCodeEbarimtQRCodeInvalid               = "EBARIMT_QR_CODE_INVALID"
	ErrCodeInformNotFound                     = "INFORM_NOTFOUND"
	ErrCodeInputCodeRegistered                = "INPUT_CODE_REGISTERED"
	ErrCodeInputNotFound                      = "INPUT_NOTFOUND"
	ErrCodeInvalidAmount                      = "INVALID_AMOUNT"
	ErrCodeInvalidObjectType                  = "INVALID_OBJECT_TYPE"
	ErrCodeInvoiceAlreadyCanceled             = "INVOICE_ALREADY_CANCELED"
	ErrCodeInvoiceCodeInvalid                 = "INVOICE_CODE_INVALID"
	ErrCodeInvoiceCodeRegistered              = "INVOICE_CODE_REGISTERED"
	ErrCodeInvoiceLineRequired                = "INVOICE_LINE_REQUIRED"
	ErrCodeInvoiceNotFound                    = "INVOICE_NOTFOUND"
	ErrCodeInvoicePaid                        = "INVOICE_PAID"
	ErrCodeInvoiceReceiverDataAddressRequired = "INVOICE_RECEIVER_DATA_ADDRESS_REQUIRED"
	ErrCodeInvoiceReceiverDataEmailRequired   = "INVOICE_RECEIVER_DATA_EMAIL_REQUIRED"
	ErrCodeInvoiceReceiverDataPhoneRequired   = "INVOICE_RECEIVER_DATA_PHONE_REQUIRED"
	ErrCodeInvoiceReceiverDataRequired        = "INVOICE_RECEIVER_DATA_REQUIRED"
	ErrCodeMaxAmount                          = "MAX_AMOUNT_ERR"
	ErrCodeMCCNotFound                        = "MCC_NOTFOUND"
	ErrCodeMerchantAlreadyRegistered          = "MERCHANT_ALREADY_REGISTERED"
	ErrCodeMerchantInactive                   = "MERCHANT_INACTIVE"
	ErrCodeMerchantNotFound                   = "MERCHANT_NOTFOUND"
	ErrCodeMinAmount                          = "MIN_AMOUNT_ERR"
	ErrCodeNoCredentials                      = "NO_CREDENDIALS"
	ErrCodeObjectDataError                    = "OBJECT_DATA_ERROR"
	ErrCodeP2PTerminalNotFound                = "P2P_TERMINAL_NOTFOUND"
	ErrCodePaymentAlreadyCanceled             = "PAYMENT_ALREADY_CANCELED"
	ErrCodePaymentNotPaid                     = "PAYMENT_NOT_PAID"
	ErrCodePaymentNotFound                    = "PAYMENT_NOTFOUND"
	ErrCodePermissionDenied                   = "PERMISSION_DENIED"
	ErrCodeQRAccountInactive                  = "QRACCOUNT_INACTIVE"
	ErrCodeQRAccountNotFound                  = "QRACCOUNT_NOTFOUND"
	ErrCodeQRCodeNotFound                     = "QRCODE_NOTFOUND"
	ErrCodeQRCodeUsed                         = "QRCODE_USED"
	ErrCodeSenderBranchDataRequired           = "SENDER_BRANCH_DATA_REQUIRED"
	ErrCodeTaxLineRequired                    = "TAX_LINE_REQUIRED"
	ErrCodeTaxProductCodeRequired             = "TAX_PRODUCT_CODE_REQUIRED"
	ErrCodeTransactionNotApproved             = "TRANSACTION_NOT_APPROVED"
	ErrCodeTransactionRequired                = "TRANSACTION_REQUIRED"
)
