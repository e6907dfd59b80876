package record

import (
	"fmt"

	"github.com/riskibarqy/fight-ledger/internal/domain/bout"
	"github.com/riskibarqy/fight-ledger/internal/domain/fighter"
)

// Identity returns the conflict key of rec within collection, joining
// composite keys with ":".
func Identity(collection Collection, rec any) (string, error) {
	switch v := rec.(type) {
	case fighter.Fighter:
		if collection == Fighters {
			return v.ID, nil
		}
	case bout.Event:
		if collection == Events {
			return v.ID, nil
		}
	case bout.Outcome:
		if collection == Outcomes {
			return v.EventID, nil
		}
	case bout.FighterStat:
		if collection == FighterStats {
			return v.EventID + ":" + v.FighterID, nil
		}
	}
	if !collection.Valid() {
		return "", &UnknownCollectionError{Collection: collection}
	}
	return "", fmt.Errorf("record of type %T does not belong to %s", rec, collection)
}
