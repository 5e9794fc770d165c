// Package blueprint decodes and encodes blueprint exchange strings.
//
// An exchange string is a version byte ('0') followed by base64 of a
// zlib-compressed JSON document:
//
//	{"blueprint": {"label": "...", "entities": [
//	    {"entity_number": 1, "name": "stone-wall", "position": {"x": 0.5, "y": 0.5}},
//	    ...
//	]}}
//
// [Decode] strips the version byte, inflates the payload, validates it against
// an embedded JSON schema and converts each record into an [entity.Entity].
// Prototype names the catalog does not model become [entity.Unknown].
// [Encode] is the inverse and is mostly used to build fixtures.
//
// Blueprint books are not supported; decoding one returns [ErrBlueprintBook].
//
// # Directions
//
// Blueprints written by the game use eight-way direction numbers (0 north,
// 2 east, 4 south, 6 west). Some hand-written fixtures use four-way numbers
// (0..3). [DirectionEncoding] selects the mapping.
package blueprint
