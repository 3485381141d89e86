package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/errs"
	idvalidator "bakery_planner_v1/internal/validator"
	"bakery_planner_v1/pkg/logger"
)

// ==================== Success ====================

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.DataResp{Data: data})
}

// respondCreated answers 201 with Location pointing at the new resource.
func respondCreated(c *gin.Context, location string, data interface{}) {
	c.Header("Location", location)
	respondData(c, http.StatusCreated, data)
}

func respondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ==================== Failure ====================

// respondError is the only place error bodies are written. Unclassified errors
// become 500 and their cause stays in the log.
func respondError(c *gin.Context, err error) {
	var e *errs.Error
	if !errors.As(err, &e) {
		e = errs.Internal(err)
	}
	l := logger.Ctx(c.Request.Context())
	if e.Status >= http.StatusInternalServerError {
		l.Error().Err(err).Msg("request failed")
	} else {
		l.Info().Str("code", e.Code).Str("type", string(e.Type)).Msg(e.Message)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(e.Status, dto.ErrorResp{Error: dto.ErrorBody{
		Code:    e.Code,
		Type:    e.Type,
		Message: e.Message,
		Details: e.Details,
	}})
}

// ==================== Binding ====================

// bindJSON decodes the request body into req. An empty body decodes to the
// zero request so the services report missing fields; malformed JSON is a
// syntax error.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errs.Syntax(err)
	}
	return nil
}

// bindQuery binds list filters and paging. Only paging is checked here, the
// filters themselves are lenient and dropped by the services when malformed.
func bindQuery(c *gin.Context, req interface{}) error {
	err := c.ShouldBindQuery(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]errs.Detail, 0, len(verrs))
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			details = append(details, errs.Detail{
				Code:    strings.ToUpper(field) + "_INVALID",
				Message: fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()),
			})
		}
		return errs.Validation(details)
	}
	return errs.Validation([]errs.Detail{{Code: "QUERY_INVALID", Message: err.Error()}})
}

// pathID reads a numeric path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	var e idvalidator.Errors
	id, ok := idvalidator.ParseID(&e, name, c.Param(name))
	if !ok {
		return 0, e.Err()
	}
	return id, nil
}

// pathIDs reads several path parameters, stopping at the first bad one.
func pathIDs(c *gin.Context, names ...string) ([]int64, error) {
	out := make([]int64, len(names))
	for i, n := range names {
		id, err := pathID(c, n)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
