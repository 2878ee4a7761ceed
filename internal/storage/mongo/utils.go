package mongo

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"recipebox/internal/storage/types"
)

// makeSearchFilter translates the search parameters into a single filter
// document. Conditions are pattern-quoted so the user text is matched as a
// literal substring, case-insensitively; empty parameters contribute nothing.
func makeSearchFilter(q types.SearchQuery) bson.M {
	filter := bson.M{}
	if q.Name != "" {
		filter["name"] = substringRegex(q.Name)
	}
	if q.Ingredient != "" {
		filter["ingredients"] = bson.M{"$elemMatch": substringRegex(q.Ingredient)}
	}
	if q.Tag != "" {
		filter["tags"] = bson.M{"$elemMatch": substringRegex(q.Tag)}
	}
	return filter
}

func substringRegex(text string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}
}

// makeUpdateDoc builds the $set document for a partial update. Only fields
// that are present and non-empty are written; updated_at always is.
func makeUpdateDoc(u types.RecipeUpdate) bson.M {
	set := bson.M{"updated_at": time.Now().UnixMilli()}
	if u.Name != "" {
		set["name"] = u.Name
	}
	if len(u.Ingredients) > 0 {
		set["ingredients"] = u.Ingredients
	}
	if u.Instructions != "" {
		set["instructions"] = u.Instructions
	}
	if u.Category != "" {
		set["category"] = u.Category
	}
	if len(u.Tags) > 0 {
		set["tags"] = u.Tags
	}
	return set
}
