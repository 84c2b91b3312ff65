package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcgrab/marcgrab/internal/testutil"
)

func fullBook() *BookInput {
	return &BookInput{
		Title:               "Moby Dick",
		Subtitle:            "or, The Whale",
		Author:              "Melville, Herman",
		SecondAuthor:        "Second, Author",
		Editor:              "Editor, Some",
		LCCN:                "2001012345",
		ISBN:                "9780142437247",
		SecondISBN:          "0142437247",
		LOCCallNumber:       "PS2384 .M6",
		PublisherLocation:   "New York",
		Publisher:           "Penguin Books",
		CopyrightYear:       "2003",
		Edition:             "Penguin classics ed.",
		Pages:               "625",
		BookHeight:          "20",
		References:          true,
		ReferencesPageRange: "601-620",
		Index:               true,
		Summary:             "A sailor recounts the obsessive quest of Captain Ahab.",
		Subjects:            []string{"Whaling", "Sea stories"},
	}
}

func TestRecordFullBook(t *testing.T) {
	rec, err := fullBook().Record()
	require.NoError(t, err)

	title := rec.FieldsByTag("245")
	require.Len(t, title, 1)
	assert.Equal(t, "1", title[0].Indicator1)
	assert.Equal(t, "0", title[0].Indicator2)
	assert.Equal(t, "Moby Dick", title[0].SubField("a"))
	assert.Equal(t, "or, The Whale", title[0].SubField("b"))

	author := rec.FieldsByTag("100")
	require.Len(t, author, 1)
	assert.Equal(t, "Melville, Herman", author[0].SubField("a"))
	assert.Equal(t, "1", author[0].Indicator1)
	assert.Equal(t, " ", author[0].Indicator2)

	added := rec.FieldsByTag("700")
	require.Len(t, added, 2)
	assert.Equal(t, "Second, Author", added[0].SubField("a"))
	assert.Equal(t, "Editor, Some", added[1].SubField("a"))

	assert.Equal(t, "2001012345", rec.FieldsByTag("010")[0].SubField("a"))

	isbns := rec.FieldsByTag("020")
	require.Len(t, isbns, 2)
	assert.Equal(t, "9780142437247", isbns[0].SubField("a"))

	call := rec.FieldsByTag("050")[0]
	assert.Equal(t, "0", call.Indicator1)
	assert.Equal(t, "4", call.Indicator2)

	publication := rec.FieldsByTag("264")
	require.Len(t, publication, 2)
	assert.Equal(t, "1", publication[0].Indicator2)
	assert.Equal(t, "New York", publication[0].SubField("a"))
	assert.Equal(t, "Penguin Books", publication[0].SubField("b"))
	assert.Equal(t, "4", publication[1].Indicator2)
	assert.Equal(t, "c2003.", publication[1].SubField("c"))

	assert.Equal(t, "Penguin classics ed.", rec.FieldsByTag("250")[0].SubField("a"))

	physical := rec.FieldsByTag("300")[0]
	assert.Equal(t, "625 p.", physical.SubField("a"))
	assert.Equal(t, "20 cm.", physical.SubField("c"))

	assert.Equal(t,
		"Includes bibliographical references (p. 601-620).",
		rec.FieldsByTag("504")[0].SubField("a"))
	assert.Equal(t, "Includes index.", rec.FieldsByTag("500")[0].SubField("a"))
	assert.NotEmpty(t, rec.FieldsByTag("520"))

	subjects := rec.FieldsByTag("650")
	require.Len(t, subjects, 2)
	assert.Equal(t, "0", subjects[0].Indicator2)
	assert.Equal(t, "Whaling", subjects[0].SubField("a"))
}

func TestRecordEmptyValuesOmitted(t *testing.T) {
	book := &BookInput{Title: "Bare Minimum"}
	rec, err := book.Record()
	require.NoError(t, err)

	require.Equal(t, 1, rec.Len())
	assert.Equal(t, "245", rec.Fields()[0].Tag)
}

func TestRecordReferencesWithoutPageRange(t *testing.T) {
	book := &BookInput{Title: "T", References: true}
	rec, err := book.Record()
	require.NoError(t, err)

	assert.Equal(t,
		"Includes bibliographical references",
		rec.FieldsByTag("504")[0].SubField("a"))
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		book BookInput
		want string
	}{
		{
			name: "author and title",
			book: BookInput{Title: "Moby Dick", Author: "Melville, Herman"},
			want: "Melville_Herman_Moby_Dick",
		},
		{
			name: "fallbacks",
			book: BookInput{},
			want: "UnknownAuthor_Untitled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.book.Filename())
		})
	}
}

func TestLoad(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("book.yaml", `
title: Moby Dick
author: "Melville, Herman"
isbn: "9780142437247"
references: true
subjects:
  - Whaling
  - Sea stories
`)

	book, err := Load(env.Path("book.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Moby Dick", book.Title)
	assert.Equal(t, "Melville, Herman", book.Author)
	assert.True(t, book.References)
	assert.Equal(t, []string{"Whaling", "Sea stories"}, book.Subjects)
}

func TestLoadMissingFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	_, err := Load(env.Path("absent.yaml"))
	assert.Error(t, err)
}

func TestRecordRoundTripsToBinary(t *testing.T) {
	rec, err := fullBook().Record()
	require.NoError(t, err)

	data, err := rec.Bytes()
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, byte(0x1d), data[len(data)-1])
}
