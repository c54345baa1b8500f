package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink(t *testing.T) {
	link := Link("+225 01 02 03 04 05", "Chaise en bois", 15000)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/2250102030405?text="), link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	msg := u.Query().Get("text")
	assert.Contains(t, msg, "Chaise en bois")
	assert.Contains(t, msg, "15\u00a0000\u00a0FCFA")
	assert.Contains(t, msg, "Brumerie")
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price int64
		want  string
	}{
		{0, "0\u00a0FCFA"},
		{500, "500\u00a0FCFA"},
		{15000, "15\u00a0000\u00a0FCFA"},
		{1250000, "1\u00a0250\u00a0000\u00a0FCFA"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPrice(tc.price))
	}
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+2250102030405"))
	assert.True(t, ValidatePhone("2250102030405"))
	assert.True(t, ValidatePhone("0102030405"))
	assert.True(t, ValidatePhone("+225 01 02 03 04 05"))

	assert.False(t, ValidatePhone("12345"))
	assert.False(t, ValidatePhone("+3360102030405"))
	assert.False(t, ValidatePhone(""))
}

func TestFormatPhoneDisplay(t *testing.T) {
	assert.Equal(t, "+225 01 02 03 0405", FormatPhoneDisplay("2250102030405"))
	// Numbers without the country code are left as given.
	assert.Equal(t, "0102030405", FormatPhoneDisplay("0102030405"))
}
