package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginMasksPassword(t *testing.T) {
	expectedMap := map[string]string{"email": "raka@example.com", "password": "***"}
	expected, _ := json.Marshal(expectedMap)
	loginReq := Login{Email: "raka@example.com", Password: "rahasia-sekali"}

	actual, _ := json.Marshal(loginReq)

	assert.EqualValues(t, expected, actual)
	assert.EqualValues(t, "rahasia-sekali", loginReq.Password)
}

func TestRegisterMasksPassword(t *testing.T) {
	registerReq := Register{
		Username: "raka",
		Email:    "raka@example.com",
		Password: "rahasia-sekali",
	}

	actual, err := json.Marshal(registerReq)

	assert.NoError(t, err)
	assert.Contains(t, string(actual), `"password":"***"`)
	assert.EqualValues(t, "rahasia-sekali", registerReq.Password)
}
