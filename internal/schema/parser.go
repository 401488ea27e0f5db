package schema

import (
	"fmt"
	"sort"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// requiredMarker is the trailing-comment convention that promotes an
// optional field to required for initialization checking.
const requiredMarker = "[required=true]"

// Set holds every file of one generation request with type references
// resolved across file boundaries.
type Set struct {
	Files []*File

	messages map[string]*Message
	enums    map[string]*Enum
}

// Parse converts descriptor protos into an immutable schema snapshot.
// The descriptors are assumed already validated by the schema compiler;
// only reference resolution can fail here.
func Parse(protos []*descriptorpb.FileDescriptorProto) (*Set, error) {
	s := &Set{
		messages: make(map[string]*Message),
		enums:    make(map[string]*Enum),
	}

	type pending struct {
		field *Field
		proto *descriptorpb.FieldDescriptorProto
	}
	var links []pending

	for _, fd := range protos {
		file := &File{
			Name:    fd.GetName(),
			Package: fd.GetPackage(),
		}
		trailing := trailingComments(fd)

		scope := fd.GetPackage()
		for i, md := range fd.GetMessageType() {
			m := s.buildMessage(md, scope, nil, []int32{messageTypePath, int32(i)}, trailing, func(f *Field, p *descriptorpb.FieldDescriptorProto) {
				links = append(links, pending{f, p})
			})
			file.Messages = append(file.Messages, m)
		}
		for _, ed := range fd.GetEnumType() {
			e := buildEnum(ed, scope, nil)
			s.enums[e.FullName] = e
			file.Enums = append(file.Enums, e)
		}

		s.Files = append(s.Files, file)
	}

	for _, l := range links {
		if err := s.link(l.field, l.proto); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// File returns the parsed file with the given descriptor name, or nil.
func (s *Set) File(name string) *File {
	for _, f := range s.Files {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Message looks up a message by fully qualified name.
func (s *Set) Message(fullName string) *Message {
	return s.messages[strings.TrimPrefix(fullName, ".")]
}

// Enum looks up an enum by fully qualified name.
func (s *Set) Enum(fullName string) *Enum {
	return s.enums[strings.TrimPrefix(fullName, ".")]
}

func (s *Set) buildMessage(md *descriptorpb.DescriptorProto, scope string, parent *Message, path []int32, trailing map[string]string, link func(*Field, *descriptorpb.FieldDescriptorProto)) *Message {
	m := &Message{
		Name:       md.GetName(),
		FullName:   qualify(scope, md.GetName()),
		Parent:     parent,
		MessageSet: md.GetOptions().GetMessageSetWireFormat(),
	}
	s.messages[m.FullName] = m

	for i, fdp := range md.GetField() {
		f := &Field{
			Name:    fdp.GetName(),
			Number:  fdp.GetNumber(),
			Kind:    Kind(fdp.GetType()),
			Label:   Label(fdp.GetLabel()),
			Packed:  fdp.GetOptions().GetPacked(),
			Default: fdp.GetDefaultValue(),
			Parent:  m,
		}
		fieldPath := append(append([]int32{}, path...), fieldPathTag, int32(i))
		if strings.Contains(trailing[pathKey(fieldPath)], requiredMarker) {
			f.RequiredTag = true
		}
		m.Fields = append(m.Fields, f)
		link(f, fdp)
	}

	for i, nested := range md.GetNestedType() {
		nm := s.buildMessage(nested, m.FullName, m, append(append([]int32{}, path...), nestedTypePath, int32(i)), trailing, link)
		m.Messages = append(m.Messages, nm)
	}
	for _, ed := range md.GetEnumType() {
		e := buildEnum(ed, m.FullName, m)
		s.enums[e.FullName] = e
		m.Enums = append(m.Enums, e)
	}

	for _, er := range md.GetExtensionRange() {
		m.ExtensionRanges = append(m.ExtensionRanges, ExtensionRange{
			Start: er.GetStart(),
			End:   er.GetEnd(),
		})
	}
	sort.Slice(m.ExtensionRanges, func(i, j int) bool {
		return m.ExtensionRanges[i].Start < m.ExtensionRanges[j].Start
	})

	return m
}

func (s *Set) link(f *Field, fdp *descriptorpb.FieldDescriptorProto) error {
	switch f.Kind {
	case KindEnum:
		e := s.Enum(fdp.GetTypeName())
		if e == nil {
			return fmt.Errorf("schema: field %s.%s references unknown enum %q", f.Parent.FullName, f.Name, fdp.GetTypeName())
		}
		f.Enum = e
	case KindMessage, KindGroup:
		m := s.Message(fdp.GetTypeName())
		if m == nil {
			return fmt.Errorf("schema: field %s.%s references unknown message %q", f.Parent.FullName, f.Name, fdp.GetTypeName())
		}
		f.Message = m
	}
	return nil
}

func buildEnum(ed *descriptorpb.EnumDescriptorProto, scope string, parent *Message) *Enum {
	e := &Enum{
		Name:     ed.GetName(),
		FullName: qualify(scope, ed.GetName()),
		Parent:   parent,
	}
	for _, v := range ed.GetValue() {
		e.Values = append(e.Values, EnumValue{
			Name:   v.GetName(),
			Number: v.GetNumber(),
		})
	}
	return e
}

func qualify(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}

// Descriptor proto field numbers used in SourceCodeInfo location paths.
const (
	messageTypePath int32 = 4 // FileDescriptorProto.message_type
	nestedTypePath  int32 = 3 // DescriptorProto.nested_type
	fieldPathTag    int32 = 2 // DescriptorProto.field
)

// trailingComments indexes SourceCodeInfo trailing comments by location
// path so the required-marker lookup is O(1) per field.
func trailingComments(fd *descriptorpb.FileDescriptorProto) map[string]string {
	out := make(map[string]string)
	for _, loc := range fd.GetSourceCodeInfo().GetLocation() {
		if c := loc.GetTrailingComments(); c != "" {
			out[pathKey(loc.GetPath())] = c
		}
	}
	return out
}

func pathKey(path []int32) string {
	var sb strings.Builder
	for i, p := range path {
		if i > 0 {
			sb.WriteByte('.')
		}
		fmt.Fprintf(&sb, "%d", p)
	}
	return sb.String()
}
