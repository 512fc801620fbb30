package service

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// stringArg returns the string argument at key. Absent, null and non-string
// values read as "".
func stringArg(args *structpb.Struct, key string) string {
	value, ok := args.GetFields()[key]
	if !ok {
		return ""
	}

	s, ok := value.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return ""
	}

	return s.StringValue
}

// stringListArg returns the list argument at key. Absent or null reads as nil;
// a list holding anything but strings is an error.
func stringListArg(args *structpb.Struct, key string) ([]string, error) {
	value, ok := args.GetFields()[key]
	if !ok {
		return nil, nil
	}

	switch kind := value.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_ListValue:
		values := kind.ListValue.GetValues()
		out := make([]string, 0, len(values))

		for i, v := range values {
			s, ok := v.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d]", ErrArgumentType, key, i)
			}

			out = append(out, s.StringValue)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrArgumentType, key)
	}
}
