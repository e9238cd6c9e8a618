package http

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ordermesh/approval-api/internal/domains/approvals/application/types"
)

// Action requests arrive via query string, form body, or JSON body, in any
// combination. Sources merge in a fixed order (query, then form, then JSON)
// with later sources overriding earlier ones, so a body value always wins
// over a query value of the same name.

// ParamSource is one ordered bag of request parameters.
type ParamSource map[string]string

// MergeParams folds the sources left to right; later values override.
func MergeParams(sources ...ParamSource) ParamSource {
	merged := ParamSource{}
	for _, source := range sources {
		for key, value := range source {
			merged[key] = value
		}
	}
	return merged
}

// collectParamSources extracts the query, form, and JSON parameter bags from
// the request in merge order.
func collectParamSources(c *gin.Context) []ParamSource {
	sources := []ParamSource{querySource(c)}
	contentType := c.ContentType()
	switch {
	case strings.Contains(contentType, "application/x-www-form-urlencoded"),
		strings.Contains(contentType, "multipart/form-data"):
		sources = append(sources, formSource(c))
	case strings.Contains(contentType, "application/json"):
		if source, ok := jsonSource(c); ok {
			sources = append(sources, source)
		}
	}
	return sources
}

func querySource(c *gin.Context) ParamSource {
	source := ParamSource{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			source[key] = values[0]
		}
	}
	return source
}

func formSource(c *gin.Context) ParamSource {
	source := ParamSource{}
	if err := c.Request.ParseForm(); err != nil {
		return source
	}
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			source[key] = values[0]
		}
	}
	return source
}

func jsonSource(c *gin.Context) (ParamSource, bool) {
	var raw map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil {
		return nil, false
	}
	source := ParamSource{}
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			source[key] = v
		case float64:
			source[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			source[key] = strconv.FormatBool(v)
		}
	}
	return source, true
}

// parseActionInput merges the request parameter sources and validates the
// required fields before any external call is made.
func parseActionInput(c *gin.Context) (types.ActionInput, error) {
	params := MergeParams(collectParamSources(c)...)
	return actionInputFromParams(params)
}

func actionInputFromParams(params ParamSource) (types.ActionInput, error) {
	rawID := strings.TrimSpace(params["id"])
	token := strings.TrimSpace(params["token"])
	expires := strings.TrimSpace(params["expires"])
	if rawID == "" || token == "" || expires == "" {
		return types.ActionInput{}, fmt.Errorf("id, token, and expires are required")
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return types.ActionInput{}, fmt.Errorf("id must be a positive integer")
	}
	return types.ActionInput{OrderID: id, Token: token, Expires: expires}, nil
}
