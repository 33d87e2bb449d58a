package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/mincutx/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

func (api *solverAPI) writeJSON(w http.ResponseWriter, status int, data envelope,
	headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

func (api *solverAPI) errorResponse(w http.ResponseWriter, r *http.Request,
	status int, code string, message string) {
	var resp errorResponse
	resp.Error.Code = code
	resp.Error.Message = message

	js, err := json.Marshal(resp)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
}

func (api *solverAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, "bad_request", err.Error())
}

func (api *solverAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("internal server error", zap.Error(err),
		zap.String("method", r.Method), zap.String("path", r.URL.Path))
	api.errorResponse(w, r, http.StatusInternalServerError, "internal_error",
		util.MessageInternalServerError)
}

func (api *solverAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	var serviceErr *util.Error
	if errors.As(err, &serviceErr) {
		switch serviceErr.Code() {
		case util.ErrBadParamInput:
			api.BadRequestResponse(w, r, err)
			return
		case util.ErrNotFound:
			api.errorResponse(w, r, http.StatusNotFound, "not_found", err.Error())
			return
		}
	}
	api.ServerErrorResponse(w, r, err)
}

func translateError(err error, trans ut.Translator) []error {
	if err == nil {
		return nil
	}
	translatedErrs := make([]error, 0)
	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			translatedErrs = append(translatedErrs, errors.New(e.Translate(trans)))
		}
	}
	return translatedErrs
}
