package models

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFiles map[string][]byte

func (f fakeFiles) ReadAttachment(_ context.Context, name string) ([]byte, error) {
	data, ok := f[name]
	if !ok {
		return nil, errors.New("no such file")
	}
	return data, nil
}

type linkedFiles struct{ fakeFiles }

func (linkedFiles) AttachmentURL(name string) string { return "https://cdn.example.com/" + name }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAgeOn(t *testing.T) {
	dob := date(1959, time.October, 21)

	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{name: "birthday not reached", today: date(2026, time.October, 20), want: 66},
		{name: "on the birthday", today: date(2026, time.October, 21), want: 67},
		{name: "after the birthday", today: date(2026, time.December, 1), want: 67},
		{name: "earlier month", today: date(2026, time.February, 28), want: 66},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeOn(dob, tt.today))
		})
	}
}

func TestParent_IsUID(t *testing.T) {
	p := NewParent("activity", "Belmont Park", "h3", "3146 Mission Blvd", "lat: 32.769939, lng: -117.251091", "7/10")

	assert.True(t, p.IsUID("h3"))
	assert.False(t, p.IsUID("h4"))
	assert.False(t, p.IsUID(""))
}

func TestParent_ApplyUpdate(t *testing.T) {
	p := NewParent("activity", "Raising Canes", "h2", "8223 Mira Mesa Blvd", "lat: 32.912239, lng: -117.147217", "10/10")

	require.NoError(t, p.ApplyUpdate(ParentUpdate{UID: "h2-new"}))

	assert.Equal(t, "h2-new", p.UID)
	assert.Equal(t, "Raising Canes", p.Name)
	assert.Equal(t, "8223 Mira Mesa Blvd", p.Address)
	assert.Equal(t, "lat: 32.912239, lng: -117.147217", p.Coordinates)
	assert.Equal(t, "10/10", p.Fun)
	assert.Empty(t, p.Password)

	require.NoError(t, p.ApplyUpdate(ParentUpdate{Name: "Canes", Fun: "9/10", Password: "secret123"}))
	assert.Equal(t, "Canes", p.Name)
	assert.Equal(t, "9/10", p.Fun)
	assert.True(t, p.IsPassword("secret123"))
}

func TestParent_Password(t *testing.T) {
	p := NewParent("user", "Thomas Edison", "toby", "", "", "")
	assert.False(t, p.IsPassword(""), "no password set")

	require.NoError(t, p.SetPassword("123toby"))
	assert.NotEqual(t, "123toby", p.Password)
	assert.True(t, p.IsPassword("123toby"))
	assert.False(t, p.IsPassword("123niko"))
}

func TestParent_ReadAt(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	dob := date(1847, time.February, 11)
	today := date(2026, time.October, 18)

	p := NewParent("user", "Thomas Edison", "toby", "Menlo Park", "lat:1,lng:2", "8/10")
	p.ID = 7
	p.DOB = &dob
	require.NoError(t, p.SetPassword("123toby"))
	p.AppendPost(Child{ID: 1, Note: "with image", Image: "ncs_logo.png"})
	p.AppendPost(Child{ID: 2, Note: "no image", Fun: "5/10"})

	view, err := p.ReadAt(context.Background(), fakeFiles{"ncs_logo.png": png}, today)
	require.NoError(t, err)

	assert.Equal(t, uint(7), view.ID)
	assert.Equal(t, "toby", view.UID)
	assert.Equal(t, "02-11-1847", view.DOB)
	require.NotNil(t, view.Age)
	assert.Equal(t, 179, *view.Age)

	require.Len(t, view.Posts, 2)
	assert.Equal(t, base64.StdEncoding.EncodeToString(png), view.Posts[0].Base64)
	assert.Equal(t, "image/png", view.Posts[0].MimeType)
	assert.Empty(t, view.Posts[1].Base64)
	assert.Equal(t, "5/10", view.Posts[1].Fun)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), p.Password)
}

func TestChild_ReadAt_ImageURL(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	c := Child{ID: 3, Image: "pic.png"}
	today := date(2026, time.October, 18)

	view, err := c.ReadAt(context.Background(), linkedFiles{fakeFiles{"pic.png": png}}, today)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/pic.png", view.ImageURL)
	assert.NotEmpty(t, view.Base64)

	view, err = c.ReadAt(context.Background(), fakeFiles{"pic.png": png}, today)
	require.NoError(t, err)
	assert.Empty(t, view.ImageURL)
}

func TestParent_ReadAt_MissingImage(t *testing.T) {
	p := NewParent("activity", "Potato Chip Rock", "h4", "Ramona, CA 92065", "lat: 33.010290, lng: -116.947480", "6/10")
	p.AppendPost(Child{ID: 3, Image: "gone.png"})

	_, err := p.ReadAt(context.Background(), fakeFiles{}, time.Now())
	assert.Error(t, err)
}

func TestParent_ReadAt_EmptyPostsIsArray(t *testing.T) {
	p := NewParent("activity", "Belmont Park", "h3", "a", "c", "f")

	view, err := p.Read(context.Background(), fakeFiles{})
	require.NoError(t, err)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"posts":[]`)
	assert.NotContains(t, string(raw), `"age"`)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDate("10-21-1959")
	require.NoError(t, err)
	assert.Equal(t, date(1959, time.October, 21), *d)

	_, err = ParseDate("1959-10-21")
	assert.Error(t, err)
}
