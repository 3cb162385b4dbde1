// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	apierrors "github.com/boxoffice-api/boxoffice/pkg/errors"
	"github.com/boxoffice-api/boxoffice/pkg/serializer"
)

// Error codes used by the server itself. Handlers may use any code from pkg/errors.
const (
	ErrCodeRateLimitExceeded  = apierrors.ErrCodeRateLimitExceeded
	ErrCodeInternalError      = apierrors.ErrCodeInternal
	ErrCodeServiceUnavailable = apierrors.ErrCodeUnavailable
	ErrCodeInvalidRequest     = apierrors.ErrCodeInvalidRequest
	ErrCodeMethodNotAllowed   = apierrors.ErrCodeMethodNotAllowed
	ErrCodeNotFound           = apierrors.ErrCodeNotFound
)

// WriteError writes a JSON error envelope with the given status and code.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code apierrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes err as a JSON error envelope. StructuredErrors keep
// their code, message and context; anything else becomes an internal error
// with fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, extraDetails map[string]any) {

	se, ok := apierrors.As(err)
	if !ok {
		details := mergeDetails(extraDetails, nil)
		if err != nil {
			details = mergeDetails(details, map[string]any{"error": err.Error()})
		}
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternalError,
			fallbackMessage, true, details)
		return
	}

	details := mergeDetails(se.Context, extraDetails)
	if se.Cause != nil {
		details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
	}

	WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message,
		retryableFromCode(se.Code), details)
}

// HTTPStatusFromCode maps an error code to its HTTP status.
func HTTPStatusFromCode(code apierrors.ErrorCode) int {
	return apierrors.HTTPStatus(code)
}

// retryableFromCode reports whether a client may retry a request that failed
// with code.
func retryableFromCode(code apierrors.ErrorCode) bool {
	switch code {
	case apierrors.ErrCodeTimeout,
		apierrors.ErrCodeUnavailable,
		apierrors.ErrCodeRateLimitExceeded,
		apierrors.ErrCodeInternal,
		apierrors.ErrCodeProcessFailed:
		return true
	default:
		return false
	}
}

// mergeDetails combines two detail maps; keys in b win. Returns nil when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
