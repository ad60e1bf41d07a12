package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/impact-sim-service/internal/impact"
	"github.com/couchcryptid/impact-sim-service/internal/simulation"
)

// number accepts a JSON number or a numeric string. An empty string is 0 and
// any other unparsable string is NaN, left to validation to reject.
type number struct {
	value float64
	set   bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	n.set = true
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			n.value = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			n.value = math.NaN()
			return nil
		}
		n.value = v
		return nil
	}
	return json.Unmarshal(b, &n.value)
}

// orZero maps an unparsable value to 0, for optional fields.
func (n number) orZero() float64 {
	if math.IsNaN(n.value) {
		return 0
	}
	return n.value
}

type simulateRequest struct {
	Diameter        number `json:"diameter"`
	Density         number `json:"density"`
	Velocity        number `json:"velocity"`
	Angle           number `json:"angle"`
	Latitude        number `json:"latitude"`
	Longitude       number `json:"longitude"`
	TargetType      string `json:"targetType"`
	ApplyTrajectory *bool  `json:"applyTrajectory"`
}

// toRequest converts the wire form, reporting the first missing required field.
// Unparsable coordinates default to 0 like absent ones.
func (r simulateRequest) toRequest() (simulation.Request, error) {
	required := []struct {
		name string
		n    number
	}{
		{"diameter", r.Diameter},
		{"density", r.Density},
		{"velocity", r.Velocity},
		{"angle", r.Angle},
	}
	for _, f := range required {
		if !f.n.set {
			return simulation.Request{}, errors.New("Missing required field: " + f.name)
		}
	}
	return simulation.Request{
		Parameters: impact.Parameters{
			Diameter:   r.Diameter.value,
			Density:    r.Density.value,
			Velocity:   r.Velocity.value,
			Angle:      r.Angle.value,
			Latitude:   r.Latitude.orZero(),
			Longitude:  r.Longitude.orZero(),
			TargetType: r.TargetType,
		},
		ApplyTrajectory: r.ApplyTrajectory,
	}, nil
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var body simulateRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := body.toRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	run, err := s.deps.Simulator.Simulate(r.Context(), req)
	var invalid *impact.InvalidParameterError
	if errors.As(err, &invalid) {
		writeError(w, http.StatusBadRequest, invalid.Error())
		return
	}
	if err != nil {
		s.logger.Error("simulation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "simulation failed")
		return
	}

	// Encode before writing the status so an unencodable result is a 500
	// rather than a 200 with an empty body.
	data, err := json.Marshal(run.Result)
	if err != nil {
		s.logger.Error("encode simulation result", "simulation_id", run.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "simulation result could not be encoded")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Simulation-ID", run.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(append(data, '\n'))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}
