package backend

import (
	"bytes"
	"encoding/json"
	"fmt"

	domainauth "github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/domain/auth"
	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
)

// id decodes an identifier the backend may send as a string or a number.
type id string

func (i *id) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*i = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = id(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*i = id(n.String())
	return nil
}

func (i *id) ptr() *string {
	if i == nil {
		return nil
	}
	s := string(*i)
	return &s
}

type loginResponse struct {
	Token            string             `json:"token"`
	UserID           id                 `json:"userId"`
	Email            string             `json:"email"`
	Username         string             `json:"username"`
	Role             domainauth.RawRole `json:"role"`
	OrganisationID   *id                `json:"organisationId"`
	OrganisationName *string            `json:"organisationName"`
}

func (r loginResponse) toPort() ports.LoginResponse {
	return ports.LoginResponse{
		Token:            r.Token,
		UserID:           string(r.UserID),
		Email:            r.Email,
		Username:         r.Username,
		Role:             r.Role,
		OrganisationID:   r.OrganisationID.ptr(),
		OrganisationName: r.OrganisationName,
	}
}

type createOrganisationResponse struct {
	Token          string `json:"token"`
	OrganisationID id     `json:"organisationId"`
	Nom            string `json:"nom"`
	UserID         *id    `json:"userId"`
}

func (r createOrganisationResponse) toPort() ports.CreateOrganisationResponse {
	return ports.CreateOrganisationResponse{
		Token:          r.Token,
		OrganisationID: string(r.OrganisationID),
		Nom:            r.Nom,
		UserID:         r.UserID.ptr(),
	}
}
