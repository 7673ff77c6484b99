package validators

import "go.mongodb.org/mongo-driver/bson"

var (
	datePattern = bson.M{
		"bsonType": "string",
		"pattern":  `^[0-9]{4}-[0-9]{2}-[0-9]{2}$`,
	}
	clockPattern = bson.M{
		"bsonType": "string",
		"pattern":  `^([01][0-9]|2[0-3]):[0-5][0-9]$`,
	}
)

var AvailabilityValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"owner_id",
			"date",
			"start_time",
			"end_time",
			"created_at",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"owner_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"date": datePattern,

			"start_time": clockPattern,

			"end_time": clockPattern,

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
