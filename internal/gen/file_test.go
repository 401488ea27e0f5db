package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objcpb/protoc-gen-objc/internal/schema"
)

func sampleFile() *schema.File {
	person := &schema.Message{Name: "Person"}
	phone := &schema.Message{Name: "PhoneNumber", Parent: person}
	person.Messages = []*schema.Message{phone}
	phoneType := &schema.Enum{
		Name:   "PhoneType",
		Parent: person,
		Values: []schema.EnumValue{{Name: "MOBILE", Number: 0}, {Name: "HOME", Number: 1}},
	}
	person.Enums = []*schema.Enum{phoneType}
	person.Fields = []*schema.Field{
		{Name: "name", Number: 1, Kind: schema.KindString, Label: schema.LabelRequired, Parent: person},
		{Name: "type", Number: 2, Kind: schema.KindEnum, Label: schema.LabelOptional, Parent: person, Enum: phoneType},
	}

	return &schema.File{
		Name:     "tutorial/person.proto",
		Package:  "tutorial",
		Messages: []*schema.Message{person},
	}
}

// Test: the default mode emits one header and one implementation file
func TestFileGenerator_Generate(t *testing.T) {
	fg := NewFileGenerator(sampleFile(), Options{Prefix: "AB"})
	files := fg.Generate()

	require.Len(t, files, 2)
	assert.Equal(t, "tutorial/person.pb.h", files[0].Name)
	assert.Equal(t, "tutorial/person.pb.m", files[1].Name)

	header := files[0].Content
	assert.Contains(t, header, "// Generated by the protocol buffer compiler. DO NOT EDIT!")
	assert.Contains(t, header, "// source: tutorial/person.proto")
	assert.Contains(t, header, "#import <ProtocolBuffers/ProtocolBuffers.h>")
	assert.Contains(t, header, "@class ABPerson;")
	assert.Contains(t, header, "@class ABPerson_Builder;")
	assert.Contains(t, header, "@class ABPerson_PhoneNumber;")
	assert.Contains(t, header, "typedef enum {")
	assert.Contains(t, header, "ABPerson_PhoneTypeMobile = 0,")
	assert.Contains(t, header, "BOOL ABPerson_PhoneTypeIsValidValue(ABPerson_PhoneType value);")
	assert.Contains(t, header, "@interface ABPersonRoot : NSObject")
	assert.Contains(t, header, "@interface ABPerson : PBGeneratedMessage")

	source := files[1].Content
	assert.Contains(t, source, `#import "person.pb.h"`)
	assert.Contains(t, source, "@implementation ABPersonRoot")
	assert.Contains(t, source, "BOOL ABPerson_PhoneTypeIsValidValue(ABPerson_PhoneType value) {")
	assert.Contains(t, source, "@implementation ABPerson")
	assert.Contains(t, source, "@implementation ABPerson_PhoneNumber")
}

// Test: divide-headers adds one self-contained unit per top-level message
func TestFileGenerator_DivideHeaders(t *testing.T) {
	fg := NewFileGenerator(sampleFile(), Options{Prefix: "AB", DivideHeaders: true})
	files := fg.Generate()

	require.Len(t, files, 3)
	assert.Equal(t, "tutorial/ABPerson.h", files[0].Name)
	assert.Contains(t, files[0].Content, `#import "person.pb.h"`)
	assert.Contains(t, files[0].Content, "@interface ABPerson : PBGeneratedMessage")

	// The shared header keeps enums and the root but no message interfaces.
	header := files[1].Content
	assert.Contains(t, header, "typedef enum {")
	assert.NotContains(t, header, "@interface ABPerson : PBGeneratedMessage")
}

// Test: the manifest lists every generated file
func TestManifestContent(t *testing.T) {
	files := []OutputFile{{Name: "a.pb.h"}, {Name: "a.pb.m"}}
	assert.Equal(t, "a.pb.h\na.pb.m\n", ManifestContent(files))
}

// Test: the root class name folds the file base name into the prefix
func TestFileGenerator_RootClassName(t *testing.T) {
	f := &schema.File{Name: "addressbook/address_book.proto"}
	fg := NewFileGenerator(f, Options{Prefix: "AB"})
	assert.Equal(t, "ABAddressBookRoot", fg.RootClassName())
}
