package nbt

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"
	"strings"
)

const (
	tagEnd = iota
	tagByte
	tagShort
	tagInt
	tagLong
	tagFloat
	tagDouble
	tagByteArray
	tagString
	tagList
	tagCompound
	tagIntArray
	tagLongArray
)

// Lengths read from the input are not trusted for allocation. Slices start at
// most this large and grow as elements are actually decoded.
const maxPrealloc = 1024

// Unmarshal decodes a root compound into v, which must be a pointer to a
// struct, a map with string keys or an interface. Struct fields are matched by
// their `nbt` tag or, without one, by field name. Keys without a matching field
// are skipped and fields without a matching key keep their zero value.
func Unmarshal(reader *bufio.Reader, v any) error {
	if tag, err := reader.ReadByte(); err != nil {
		return err
	} else if tag != tagCompound {
		return fmt.Errorf("expected root tag to be compound (%d), but got %d", tagCompound, tag)
	}

	if _, err := readString(reader); err != nil {
		return err
	}

	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return fmt.Errorf("unmarshal target must be a non-nil pointer, got %T", v)
	}

	return unmarshalCompound(reader, val.Elem())
}

func readString(reader io.Reader) (string, error) {
	var strLen uint16
	if err := binary.Read(reader, binary.BigEndian, &strLen); err != nil {
		return "", err
	}

	data := make([]byte, strLen)
	if _, err := io.ReadFull(reader, data); err != nil {
		return "", err
	}

	return string(data), nil
}

// fieldName resolves the compound key of a struct field.
func fieldName(field reflect.StructField) (name string, omitEmpty bool, ok bool) {
	if !field.IsExported() {
		return "", false, false
	}

	tag, hasTag := field.Tag.Lookup("nbt")
	if !hasTag {
		return field.Name, false, true
	}
	if tag == "-" {
		return "", false, false
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, opts == "omitempty", true
}

func structFields(ty reflect.Type) map[string]int {
	fields := make(map[string]int, ty.NumField())
	for i := 0; i < ty.NumField(); i++ {
		if name, _, ok := fieldName(ty.Field(i)); ok {
			fields[name] = i
		}
	}
	return fields
}

func unmarshalCompound(reader *bufio.Reader, v reflect.Value) error {
	var fields map[string]int
	if v.IsValid() {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}

		switch v.Kind() {
		case reflect.Interface:
			compound, err := readDynamicCompound(reader)
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(compound))
			return nil

		case reflect.Struct:
			fields = structFields(v.Type())

		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return fmt.Errorf("tried to unmarshal compound into %s", v.Type().String())
			}
			if v.IsNil() {
				v.Set(reflect.MakeMap(v.Type()))
			}

		default:
			return fmt.Errorf("tried to unmarshal compound into %s", v.Type().String())
		}
	}

	for {
		tag, err := reader.ReadByte()
		if err != nil {
			return err
		}

		if tag == tagEnd {
			break
		}

		key, err := readString(reader)
		if err != nil {
			return err
		}

		var field reflect.Value
		var mapElem reflect.Value
		if v.IsValid() {
			if v.Kind() == reflect.Map {
				mapElem = reflect.New(v.Type().Elem()).Elem()
				field = mapElem
			} else if i, ok := fields[key]; ok {
				field = v.Field(i)
			}
		}

		if err := unmarshalValue(tag, reader, field); err != nil {
			return fmt.Errorf("in field %s: %w", key, err)
		}

		if mapElem.IsValid() {
			v.SetMapIndex(reflect.ValueOf(key).Convert(v.Type().Key()), mapElem)
		}
	}

	return nil
}

func unmarshalList(reader *bufio.Reader, val reflect.Value) error {
	elementType, err := reader.ReadByte()
	if err != nil {
		return err
	}

	var listLen int32
	if err := binary.Read(reader, binary.BigEndian, &listLen); err != nil {
		return err
	}

	if listLen < 0 {
		listLen = 0
	}

	if val.IsValid() && val.Kind() == reflect.Interface {
		list, err := readDynamicList(reader, elementType, listLen)
		if err != nil {
			return err
		}
		val.Set(reflect.ValueOf(list))
		return nil
	}

	var list reflect.Value
	if val.IsValid() {
		if val.Kind() != reflect.Slice {
			return fmt.Errorf("tried to assign list to %s", val.Type().String())
		}
		list = reflect.MakeSlice(val.Type(), 0, min(int(listLen), maxPrealloc))
	}

	for i := 0; i < int(listLen); i++ {
		var elem reflect.Value
		if list.IsValid() {
			elem = reflect.New(list.Type().Elem()).Elem()
		}

		if err := unmarshalValue(elementType, reader, elem); err != nil {
			return fmt.Errorf("at index %d: %w", i, err)
		}

		if list.IsValid() {
			list = reflect.Append(list, elem)
		}
	}

	if val.IsValid() {
		val.Set(list)
	}
	return nil
}

func unmarshalPrimitiveArray[T any](reader io.Reader) ([]T, error) {
	var arrLen int32
	if err := binary.Read(reader, binary.BigEndian, &arrLen); err != nil {
		return nil, err
	}

	if arrLen < 0 {
		return nil, fmt.Errorf("negative array length %d", arrLen)
	}

	data := make([]T, 0, min(int(arrLen), maxPrealloc))
	buf := make([]T, min(int(arrLen), maxPrealloc))
	for remaining := int(arrLen); remaining > 0; {
		n := min(remaining, len(buf))
		if err := binary.Read(reader, binary.BigEndian, buf[:n]); err != nil {
			return nil, err
		}
		data = append(data, buf[:n]...)
		remaining -= n
	}

	return data, nil
}

// assignInteger stores n into any integer kind. Unsigned targets receive the
// two's complement bits of the tag's width, so a byte tag always fits a uint8.
func assignInteger(val reflect.Value, n int64, bits int) error {
	if !val.IsValid() {
		return nil
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if val.OverflowInt(n) {
			return fmt.Errorf("value %d overflows %s", n, val.Type().String())
		}
		val.SetInt(n)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := uint64(n)
		if bits < 64 {
			u &= 1<<bits - 1
		}
		if val.OverflowUint(u) {
			return fmt.Errorf("value %d overflows %s", n, val.Type().String())
		}
		val.SetUint(u)
		return nil

	case reflect.Interface:
		return assign(val, reflect.ValueOf(n).Convert(integerType(bits)))

	default:
		return fmt.Errorf("tried to assign integer to %s", val.Type().String())
	}
}

func integerType(bits int) reflect.Type {
	switch bits {
	case 8:
		return reflect.TypeOf(int8(0))
	case 16:
		return reflect.TypeOf(int16(0))
	case 32:
		return reflect.TypeOf(int32(0))
	default:
		return reflect.TypeOf(int64(0))
	}
}

func assign(val reflect.Value, newVal reflect.Value) error {
	if !val.IsValid() {
		return nil
	}

	if !newVal.Type().AssignableTo(val.Type()) {
		return fmt.Errorf("tried to assign %s to %s", newVal.Type().String(), val.Type().String())
	}

	val.Set(newVal)
	return nil
}

func unmarshalValue(tag byte, reader *bufio.Reader, val reflect.Value) error {
	switch tag {
	case tagByte:
		b, err := reader.ReadByte()
		if err != nil {
			return err
		}
		return assignInteger(val, int64(int8(b)), 8)

	case tagShort:
		var value int16
		if err := binary.Read(reader, binary.BigEndian, &value); err != nil {
			return err
		}
		return assignInteger(val, int64(value), 16)

	case tagInt:
		var value int32
		if err := binary.Read(reader, binary.BigEndian, &value); err != nil {
			return err
		}
		return assignInteger(val, int64(value), 32)

	case tagLong:
		var value int64
		if err := binary.Read(reader, binary.BigEndian, &value); err != nil {
			return err
		}
		return assignInteger(val, value, 64)

	case tagFloat:
		var value float32
		if err := binary.Read(reader, binary.BigEndian, &value); err != nil {
			return err
		}
		return assign(val, reflect.ValueOf(value))

	case tagDouble:
		var value float64
		if err := binary.Read(reader, binary.BigEndian, &value); err != nil {
			return err
		}
		return assign(val, reflect.ValueOf(value))

	case tagByteArray:
		arr, err := unmarshalPrimitiveArray[byte](reader)
		if err != nil {
			return err
		}
		return assign(val, reflect.ValueOf(arr))

	case tagString:
		str, err := readString(reader)
		if err != nil {
			return err
		}
		return assign(val, reflect.ValueOf(str))

	case tagList:
		return unmarshalList(reader, val)

	case tagCompound:
		return unmarshalCompound(reader, val)

	case tagIntArray:
		arr, err := unmarshalPrimitiveArray[int32](reader)
		if err != nil {
			return err
		}
		return assign(val, reflect.ValueOf(arr))

	case tagLongArray:
		arr, err := unmarshalPrimitiveArray[int64](reader)
		if err != nil {
			return err
		}
		return assign(val, reflect.ValueOf(arr))

	default:
		return fmt.Errorf("unsupported NBT tag %d", tag)
	}
}

// readDynamic decodes a value of unknown shape. Compounds become
// map[string]any and lists become []any.
func readDynamic(tag byte, reader *bufio.Reader) (any, error) {
	switch tag {
	case tagList:
		elementType, err := reader.ReadByte()
		if err != nil {
			return nil, err
		}

		var listLen int32
		if err := binary.Read(reader, binary.BigEndian, &listLen); err != nil {
			return nil, err
		}

		if listLen < 0 {
			listLen = 0
		}
		return readDynamicList(reader, elementType, listLen)

	case tagCompound:
		return readDynamicCompound(reader)

	default:
		var value any
		if err := unmarshalValue(tag, reader, reflect.ValueOf(&value).Elem()); err != nil {
			return nil, err
		}
		return value, nil
	}
}

func readDynamicList(reader *bufio.Reader, elementType byte, listLen int32) ([]any, error) {
	list := make([]any, 0, min(int(listLen), maxPrealloc))
	for i := 0; i < int(listLen); i++ {
		value, err := readDynamic(elementType, reader)
		if err != nil {
			return nil, err
		}
		list = append(list, value)
	}
	return list, nil
}

func readDynamicCompound(reader *bufio.Reader) (map[string]any, error) {
	values := make(map[string]any)

	for {
		tag, err := reader.ReadByte()
		if err != nil {
			return nil, err
		}

		if tag == tagEnd {
			break
		}

		key, err := readString(reader)
		if err != nil {
			return nil, err
		}

		value, err := readDynamic(tag, reader)
		if err != nil {
			return nil, fmt.Errorf("in field %s: %w", key, err)
		}
		values[key] = value
	}

	return values, nil
}

// Marshal encodes v as a root compound named tagName. Struct fields honour the
// same `nbt` tags as Unmarshal, plus an `omitempty` option.
func Marshal(v any, tagName string, w io.Writer) error {
	if _, err := w.Write([]byte{tagCompound}); err != nil {
		return err
	}

	if err := writeString(w, tagName); err != nil {
		return err
	}

	return marshalCompound(w, reflect.ValueOf(v))
}

func writeString(w io.Writer, val string) error {
	if len(val) > math.MaxUint16 {
		return fmt.Errorf("string length %d exceeds maximum %d", len(val), math.MaxUint16)
	}

	if err := binary.Write(w, binary.BigEndian, uint16(len(val))); err != nil {
		return err
	}

	_, err := w.Write([]byte(val))
	return err
}

func marshalList(w io.Writer, v reflect.Value) error {
	if err := writeTag(w, v.Type().Elem()); err != nil {
		return err
	}

	listLen := v.Len()
	if listLen > math.MaxInt32 {
		return fmt.Errorf("list length %d is greater than maximum encodable %d", listLen, math.MaxInt32)
	}

	if err := binary.Write(w, binary.BigEndian, int32(listLen)); err != nil {
		return err
	}

	for i := 0; i < int(listLen); i++ {
		if err := marshalValue(w, v.Index(i)); err != nil {
			return err
		}
	}

	return nil
}

func marshalEntry(w io.Writer, name string, v reflect.Value) error {
	if err := writeTag(w, v.Type()); err != nil {
		return err
	}

	if err := writeString(w, name); err != nil {
		return err
	}

	if err := marshalValue(w, v); err != nil {
		return fmt.Errorf("in field %s: %w", name, err)
	}
	return nil
}

func marshalCompound(w io.Writer, v reflect.Value) error {
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			name, omitEmpty, ok := fieldName(v.Type().Field(i))
			if !ok {
				continue
			}

			field := v.Field(i)
			if omitEmpty && field.IsZero() {
				continue
			}

			if err := marshalEntry(w, name, field); err != nil {
				return err
			}
		}

	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("tried to marshal compound from %s", v.Type().String())
		}

		keys := make([]string, 0, v.Len())
		for _, key := range v.MapKeys() {
			keys = append(keys, key.String())
		}
		slices.Sort(keys)

		for _, key := range keys {
			elem := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
			if err := marshalEntry(w, key, elem); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("tried to marshal compound from %s", v.Type().String())
	}

	_, err := w.Write([]byte{tagEnd})
	return err
}

func marshalValue(w io.Writer, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Uint8:
		_, err := w.Write([]byte{byte(v.Uint())})
		return err

	case reflect.Int8:
		_, err := w.Write([]byte{byte(v.Int())})
		return err

	case reflect.Int16:
		return binary.Write(w, binary.BigEndian, int16(v.Int()))

	case reflect.Int32:
		return binary.Write(w, binary.BigEndian, int32(v.Int()))

	case reflect.Int64:
		return binary.Write(w, binary.BigEndian, v.Int())

	case reflect.Float32:
		return binary.Write(w, binary.BigEndian, float32(v.Float()))

	case reflect.Float64:
		return binary.Write(w, binary.BigEndian, v.Float())

	case reflect.Slice:
		sliceType := v.Type().Elem()
		switch sliceType.Kind() {
		case reflect.Uint8, reflect.Int32, reflect.Int64:
			listLen := v.Len()
			if listLen > math.MaxInt32 {
				return fmt.Errorf("slice length %d exceeds maximum %d", listLen, math.MaxInt32)
			}

			if err := binary.Write(w, binary.BigEndian, int32(listLen)); err != nil {
				return err
			}

			return binary.Write(w, binary.BigEndian, v.Interface())
		default:
			return marshalList(w, v)
		}

	case reflect.String:
		return writeString(w, v.String())

	case reflect.Struct, reflect.Map:
		return marshalCompound(w, v)

	default:
		return fmt.Errorf("cannot serialize type %s", v.Type().String())
	}
}

func writeTag(w io.Writer, ty reflect.Type) error {
	var tag byte
	switch ty.Kind() {
	case reflect.Uint8, reflect.Int8:
		tag = tagByte
	case reflect.Int16:
		tag = tagShort
	case reflect.Int32:
		tag = tagInt
	case reflect.Int64:
		tag = tagLong
	case reflect.Float32:
		tag = tagFloat
	case reflect.Float64:
		tag = tagDouble
	case reflect.Slice:
		switch ty.Elem().Kind() {
		case reflect.Uint8:
			tag = tagByteArray
		case reflect.Int32:
			tag = tagIntArray
		case reflect.Int64:
			tag = tagLongArray
		default:
			tag = tagList
		}
	case reflect.String:
		tag = tagString
	case reflect.Struct, reflect.Map:
		tag = tagCompound
	default:
		return fmt.Errorf("cannot serialize type %s", ty.String())
	}

	_, err := w.Write([]byte{tag})
	return err
}
