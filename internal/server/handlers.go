package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/roboco-io/jww2dxf/internal/export"
	"github.com/roboco-io/jww2dxf/internal/pipeline"
	"go.uber.org/zap"
)

// HeaderDiagnostics carries the number of diagnostics of a conversion.
const HeaderDiagnostics = "X-Diagnostics"

// queryKeys maps accepted query parameters to config keys.
var queryKeys = map[string]string{
	"strict":              "parse.strict",
	"stop_rule":           "parse.stop_rule",
	"scale":               "convert.unit_scale",
	"flip_y":              "convert.flip_y",
	"include_temp_points": "convert.include_temporary_points",
	"precision":           "output.precision",
	"acad_version":        "output.acad_version",
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"formats": export.List(),
	})
}

// handleConvert converts the JWW request body and returns DXF text.
func (s *Server) handleConvert(c echo.Context) error {
	opts, err := s.options(c)
	if err != nil {
		return err
	}
	data, err := readBody(c)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(data, opts)
	if err != nil {
		return NewParseError(err)
	}

	s.log.Debug("drawing converted",
		zap.Int("bytes", len(data)),
		zap.Int("entities", len(res.DXF.Entities)),
		zap.Int("diagnostics", len(res.Diagnostics)))

	c.Response().Header().Set(HeaderDiagnostics, strconv.Itoa(len(res.Diagnostics)))
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, []byte(res.Text))
}

// handleParse decodes the JWW request body and returns the document in the
// format named by the format query parameter (json by default).
func (s *Server) handleParse(c echo.Context) error {
	name := c.QueryParam("format")
	if name == "" {
		name = "json"
	}
	enc, err := export.Get(name)
	if err != nil {
		return NewBadRequestError("unsupported format", err)
	}

	opts, err := s.options(c)
	if err != nil {
		return err
	}
	data, err := readBody(c)
	if err != nil {
		return err
	}

	doc, diags, err := pipeline.Parse(data, opts)
	if err != nil {
		return NewParseError(err)
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, export.NewPayload(doc, diags)); err != nil {
		return NewInternalError("failed to encode document", err)
	}
	c.Response().Header().Set(HeaderDiagnostics, strconv.Itoa(len(diags)))
	return c.Blob(http.StatusOK, enc.ContentType(), buf.Bytes())
}

// options builds pipeline options from the server config and the query.
func (s *Server) options(c echo.Context) (pipeline.Options, error) {
	cfg := *s.cfg
	for param, key := range queryKeys {
		v := c.QueryParam(param)
		if v == "" {
			continue
		}
		if err := cfg.Set(key, v); err != nil {
			return pipeline.Options{}, NewBadRequestError(fmt.Sprintf("invalid query parameter %q", param), err)
		}
	}
	opts, err := pipeline.OptionsFromConfig(&cfg, s.log)
	if err != nil {
		return opts, NewBadRequestError("invalid options", err)
	}
	return opts, nil
}

func readBody(c echo.Context) ([]byte, error) {
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return nil, he
		}
		return nil, NewBadRequestError("failed to read request body", err)
	}
	if len(data) == 0 {
		return nil, NewBadRequestError("empty request body", nil)
	}
	return data, nil
}
