package api

import (
	"encoding/json"
	"net/http"
)

// ProblemMediaType is the content type of an RFC 7807 problem response.
const ProblemMediaType = "application/problem+json"

// Problem is the shape of an RFC 7807 problem payload returned by the
// service. Members beyond the three standard ones are kept raw in Extensions
// so that unrecognized problems survive a decode/encode round trip intact.
type Problem struct {
	Type       string
	Title      string
	Status     int
	Extensions map[string]json.RawMessage
}

func (p *Problem) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}

	if raw, ok := members["type"]; ok {
		if err := json.Unmarshal(raw, &p.Type); err != nil {
			return err
		}
		delete(members, "type")
	}
	if raw, ok := members["title"]; ok {
		if err := json.Unmarshal(raw, &p.Title); err != nil {
			return err
		}
		delete(members, "title")
	}
	if raw, ok := members["status"]; ok {
		if err := json.Unmarshal(raw, &p.Status); err != nil {
			return err
		}
		delete(members, "status")
	}

	if len(members) > 0 {
		p.Extensions = members
	}
	return nil
}

func (p Problem) MarshalJSON() ([]byte, error) {
	members := make(map[string]json.RawMessage, len(p.Extensions)+3)
	for k, v := range p.Extensions {
		members[k] = v
	}

	var err error
	if members["type"], err = json.Marshal(p.Type); err != nil {
		return nil, err
	}
	if members["title"], err = json.Marshal(p.Title); err != nil {
		return nil, err
	}
	if members["status"], err = json.Marshal(p.Status); err != nil {
		return nil, err
	}

	return json.Marshal(members)
}

// ProblemResponse is the error returned when the service replies with an
// RFC 7807 problem. The problem's type URI is the discriminator that the
// domain layer matches on.
type ProblemResponse struct {
	Problem Problem
	Status  int
	Headers http.Header
}

func (e *ProblemResponse) Error() string {
	if e.Problem.Title != "" {
		return e.Problem.Title
	}
	return e.Problem.Type
}
