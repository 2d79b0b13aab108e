package httpapi

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/vaga.json
var vagaSchemaJSON []byte

var vagaSchema = mustCompileSchema("vaga.json", vagaSchemaJSON)

// validationError is a request that never reached the operation: malformed
// JSON, a body that breaks the schema, or a non-integer path id.
type validationError struct {
	msg string
}

func (e *validationError) Error() string {
	return e.msg
}

func invalid(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

func mustCompileSchema(name string, schemaJSON []byte) *santhosh.Schema {
	compiler := santhosh.NewCompiler()
	compiler.Draft = santhosh.Draft7
	if err := compiler.AddResource(name, bytes.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	return compiler.MustCompile(name)
}

// decodeVagaDTO reads the body, checks it against the vaga schema and decodes it.
func decodeVagaDTO(w http.ResponseWriter, r *http.Request) (VagaDTO, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return VagaDTO{}, invalid("request body too large")
		}
		return VagaDTO{}, invalid("invalid json body")
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return VagaDTO{}, invalid("invalid json body")
	}
	if err := ensureEOF(decoder); err != nil {
		return VagaDTO{}, invalid("invalid json body")
	}

	if err := vagaSchema.Validate(doc); err != nil {
		var ve *santhosh.ValidationError
		if errors.As(err, &ve) {
			return VagaDTO{}, invalid("%s", strings.Join(collectValidationErrors(ve), "; "))
		}
		return VagaDTO{}, invalid("%s", err.Error())
	}

	var dto VagaDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return VagaDTO{}, invalid("invalid json body")
	}
	return dto, nil
}

func collectValidationErrors(ve *santhosh.ValidationError) []string {
	var msgs []string
	for _, cause := range ve.Causes {
		msgs = append(msgs, collectValidationErrors(cause)...)
	}
	if len(ve.Causes) == 0 {
		if ve.InstanceLocation == "" {
			msgs = append(msgs, ve.Message)
		} else {
			msgs = append(msgs, ve.InstanceLocation+": "+ve.Message)
		}
	}
	return msgs
}

func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalid("id must be an integer: %q", raw)
	}
	return id, nil
}

func ensureEOF(decoder *json.Decoder) error {
	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return errors.New("extra json tokens")
}
