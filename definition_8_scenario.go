package bankers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is the file form of a configuration, with the outstanding
// requests used for deadlock detection.
type Scenario struct {
	ParamsNewState `yaml:",inline"`

	Pending [][]int64 `yaml:"pending,omitempty" json:"pending,omitempty"`
}

func NewScenario(state *State, pending [][]int64) *Scenario {
	return &Scenario{
		ParamsNewState: *state.Params(),
		Pending:        copyMatrix(pending),
	}
}

func DecodeScenario(r io.Reader) (*Scenario, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var result Scenario

	if errDecode := decoder.Decode(&result); errDecode != nil {
		if errors.Is(errDecode, io.EOF) {
			return nil,
				fmt.Errorf(
					"%w: empty scenario",
					ErrInvalidInput,
				)
		}

		return nil,
			fmt.Errorf(
				"%w: decode scenario: %w",
				ErrInvalidInput,
				errDecode,
			)
	}

	return &result,
		nil
}

func ReadScenarioFile(path string) (*Scenario, error) {
	content, errRead := os.ReadFile(path)
	if errRead != nil {
		return nil,
			errRead
	}

	return DecodeScenario(bytes.NewReader(content))
}

func (s *Scenario) Encode(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if errEncode := encoder.Encode(s); errEncode != nil {
		return errEncode
	}

	return encoder.Close()
}

func (s *Scenario) WriteFile(path string) error {
	var buf bytes.Buffer

	if errEncode := s.Encode(&buf); errEncode != nil {
		return errEncode
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}
