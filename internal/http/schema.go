package http

// Schema for the bulk ledger import payload. Date parsing stays lenient here
// on purpose; the normalizer is the authority on accepted formats.
const importEntrySchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["category", "amount", "date"],
    "properties": {
      "type": {"type": "string"},
      "category": {"type": "string", "minLength": 1},
      "amount": {"type": "number", "minimum": 0},
      "note": {"type": "string"},
      "place": {"type": "string"},
      "date": {"type": "string", "minLength": 1},
      "paymentMethod": {"type": "string"},
      "iconKey": {"type": "string"}
    }
  }
}`
