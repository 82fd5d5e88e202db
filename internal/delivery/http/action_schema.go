package http

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/bellavista/orderbot/internal/domain"
)

// actionSchema is the client-facing contract for action_data
const actionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "item": {
      "type": "object",
      "required": ["name", "quantity", "price", "id"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "quantity": {"type": "integer", "minimum": 1},
        "price": {"type": "number", "minimum": 0},
        "id": {"type": "string"},
        "commentary": {"type": "string"}
      }
    },
    "items": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/item"}},
    "labels": {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}},
    "emotion": {
      "type": "object",
      "required": ["emotion", "intensity"],
      "properties": {
        "emotion": {"enum": ["neutral", "crisis", "very_negative", "celebratory", "lonely", "unwell", "negative", "positive", "slightly_negative"]},
        "intensity": {"enum": ["none", "low", "medium", "high", "very_high"]}
      }
    }
  },
  "type": "object",
  "required": ["action", "message_type"],
  "properties": {
    "action": {"enum": ["greeting", "clear_chat", "show_cart", "show_menu", "remove_all", "update", "place_order",
      "multi_category_bulk", "bulk_menu", "add_multiple", "add_multiple_partial", "add", "item_not_found", "none"]},
    "message_type": {"enum": ["text", "cart", "menu", "receipt", "bulk-menu", "multi-bulk"]},
    "response_delay": {"type": "integer", "minimum": 0}
  },
  "allOf": [
    {
      "if": {"properties": {"action": {"const": "greeting"}}},
      "then": {
        "required": ["emotional_state", "response_text"],
        "properties": {
          "message_type": {"const": "text"},
          "greeting_name": {"type": "string"},
          "emotional_state": {"$ref": "#/definitions/emotion"},
          "response_text": {"type": "string", "minLength": 1}
        }
      }
    },
    {
      "if": {"properties": {"action": {"enum": ["clear_chat", "item_not_found", "none"]}}},
      "then": {"properties": {"message_type": {"const": "text"}}}
    },
    {
      "if": {"properties": {"action": {"enum": ["show_cart", "remove_all", "update", "add_multiple", "add_multiple_partial", "add"]}}},
      "then": {"properties": {"message_type": {"const": "cart"}}}
    },
    {
      "if": {"properties": {"action": {"const": "show_menu"}}},
      "then": {"properties": {"message_type": {"const": "menu"}}}
    },
    {
      "if": {"properties": {"action": {"const": "remove_all"}}},
      "then": {"required": ["target_item"], "properties": {"target_item": {"type": "string", "minLength": 1}}}
    },
    {
      "if": {"properties": {"action": {"const": "update"}}},
      "then": {
        "required": ["operation", "target_item", "quantity"],
        "properties": {
          "operation": {"enum": ["increase", "decrease"]},
          "target_item": {"type": "string", "minLength": 1},
          "quantity": {"type": "integer", "minimum": 1}
        }
      }
    },
    {
      "if": {"properties": {"action": {"const": "place_order"}}},
      "then": {
        "required": ["order_id"],
        "properties": {
          "message_type": {"const": "receipt"},
          "order_id": {"type": "string", "minLength": 1},
          "order_total": {"type": "number", "minimum": 0}
        }
      }
    },
    {
      "if": {"properties": {"action": {"const": "multi_category_bulk"}}},
      "then": {
        "required": ["multi_categories", "current_category_index"],
        "properties": {
          "message_type": {"const": "multi-bulk"},
          "multi_categories": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["category", "quantity"],
              "properties": {
                "category": {"type": "string", "minLength": 1},
                "quantity": {"type": "integer", "minimum": 1}
              }
            }
          },
          "current_category_index": {"type": "integer", "minimum": 0}
        }
      }
    },
    {
      "if": {"properties": {"action": {"const": "bulk_menu"}}},
      "then": {
        "required": ["category", "bulk_quantity"],
        "properties": {
          "message_type": {"const": "bulk-menu"},
          "category": {"type": "string", "minLength": 1},
          "bulk_quantity": {"type": "integer", "minimum": 1}
        }
      }
    },
    {
      "if": {"properties": {"action": {"const": "add_multiple"}}},
      "then": {"required": ["items"], "properties": {"items": {"$ref": "#/definitions/items"}}}
    },
    {
      "if": {"properties": {"action": {"const": "add_multiple_partial"}}},
      "then": {
        "required": ["items", "not_found_items"],
        "properties": {
          "items": {"$ref": "#/definitions/items"},
          "not_found_items": {"$ref": "#/definitions/labels"}
        }
      }
    },
    {
      "if": {"properties": {"action": {"const": "add"}}},
      "then": {
        "required": ["items", "emotional_context"],
        "properties": {
          "items": {"$ref": "#/definitions/items"},
          "emotional_context": {"$ref": "#/definitions/emotion"}
        }
      }
    },
    {
      "if": {"properties": {"action": {"const": "item_not_found"}}},
      "then": {"required": ["not_found_items"], "properties": {"not_found_items": {"$ref": "#/definitions/labels"}}}
    }
  ]
}`

// ViolationRecorder counts action records that break the contract
type ViolationRecorder interface {
	ContractViolation(action string)
}

// ActionValidator checks action records against the client contract.
// Violations are logged and counted; they never change the response.
type ActionValidator struct {
	schema   *gojsonschema.Schema
	logger   *zap.Logger
	recorder ViolationRecorder
}

// NewActionValidator compiles the embedded schema
func NewActionValidator(logger *zap.Logger, recorder ViolationRecorder) (*ActionValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(actionSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile action schema: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionValidator{schema: schema, logger: logger, recorder: recorder}, nil
}

// Validate returns an error describing every contract violation of record
func (v *ActionValidator) Validate(record domain.ActionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode action: %w", err)
	}

	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate action: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("action %s violates contract: %s", record.Kind(), strings.Join(problems, "; "))
}

// Check validates record, logging and counting any violation
func (v *ActionValidator) Check(record domain.ActionRecord, requestID string) {
	if record == nil {
		return
	}
	if err := v.Validate(record); err != nil {
		v.logger.Warn("action contract violation",
			zap.String("action", string(record.Kind())),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		if v.recorder != nil {
			v.recorder.ContractViolation(string(record.Kind()))
		}
	}
}
