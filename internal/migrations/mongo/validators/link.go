package validators

import "go.mongodb.org/mongo-driver/bson"

var LinkValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"link_id",
			"owner_id",
			"slot_duration_minutes",
			"active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"link_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"owner_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"slot_duration_minutes": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
