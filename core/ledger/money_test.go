package ledger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    Money
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: "1000", want: 100000},
		{in: "12.5", want: 1250},
		{in: "12,50", want: 1250},
		{in: "0.01", want: 1},
		{in: ".5", want: 50},
		{in: "1.234", want: 123},
		{in: "1.235", want: 124},
		{in: "12.995", want: 1300},
		{in: " 7 ", want: 700},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "+1", wantErr: true},
		{in: "1.", wantErr: true},
		{in: "1.2.3", wantErr: true},
		{in: "1e3", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.2a", wantErr: true},
		{in: "999999999999999999999", wantErr: true},
		{in: "99999999.99", want: MaxMoney},
		{in: "99999999.994", want: MaxMoney},
		{in: "99999999.995", wantErr: true},
		{in: "100000000", wantErr: true},
		{in: "1000000000000000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMoney(tt.in)
			if tt.wantErr {
				assert.Equal(t, ErrInvalidAmount, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "1000", Money(100000).String())
	assert.Equal(t, "12.50", Money(1250).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "-3.05", Money(-305).String())
	assert.Equal(t, "0", Money(0).String())
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Amount Money `json:"amount"`
	}{Money(1250)})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"amount": 12.50}`, string(data))

	var v struct {
		Amount *Money `json:"amount"`
	}
	for in, want := range map[string]Money{`{"amount": 1000}`: 100000, `{"amount": "12,5"}`: 1250, `{"amount": 0.1}`: 10} {
		v.Amount = nil
		assert.NoError(t, json.Unmarshal([]byte(in), &v), in)
		if assert.NotNil(t, v.Amount, in) {
			assert.Equal(t, want, *v.Amount, in)
		}
	}

	v.Amount = nil
	assert.NoError(t, json.Unmarshal([]byte(`{"amount": null}`), &v))
	assert.Nil(t, v.Amount)

	assert.Equal(t, ErrInvalidAmount, json.Unmarshal([]byte(`{"amount": -5}`), &v))
}

func TestMoney_YAML(t *testing.T) {
	var v struct {
		Amount Money `yaml:"amount"`
	}
	assert.NoError(t, yaml.Unmarshal([]byte("amount: 350000\n"), &v))
	assert.Equal(t, Money(35000000), v.Amount)

	assert.Error(t, yaml.Unmarshal([]byte("amount: lol\n"), &v))
}
