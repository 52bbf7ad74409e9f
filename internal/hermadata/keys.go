package hermadata

import "github.com/hermadata/console/internal/querycache"

// Cache key kinds. The kind string is the first tuple element of every
// key and selects TTL/retention policy; see config.
const (
	KindAnimal       = "animal"
	KindAnimalSearch = "animal-search"
	KindAnimalDocs   = "animal-documents"
	KindAdopter      = "adopter"
	KindAdopterSrch  = "adopter-search"
	KindVetSearch    = "vet-search"
	KindRaces        = "race"
	KindBreeds       = "breed"
	KindProvinces    = "province"
	KindCities       = "city"
	KindDocKinds     = "doc-kind"
	KindUsers        = "user"
	KindStats        = "stats"
)

// Key constructors pin the tuple layout in one place so every view and
// every mutation patch addresses the same entries.

func AnimalKey(id int64) querycache.Key { return querycache.NewKey(KindAnimal, id) }

func AnimalSearchKey(q AnimalQuery) querycache.Key {
	return querycache.NewKey(KindAnimalSearch,
		q.FromIndex, q.ToIndex, q.SortField, q.SortOrder,
		q.RaceID, q.NameLike, q.ChipCode, q.EntryFrom, q.EntryTo, q.Adoptable)
}

func AnimalDocumentsKey(animalID int64) querycache.Key {
	return querycache.NewKey(KindAnimalDocs, animalID)
}

func AdopterKey(id int64) querycache.Key { return querycache.NewKey(KindAdopter, id) }

func AdopterSearchKey(q AdopterQuery) querycache.Key {
	return querycache.NewKey(KindAdopterSrch,
		q.FromIndex, q.ToIndex, q.SortField, q.SortOrder, q.NameLike, q.FiscalCode)
}

func VetSearchKey(q VetQuery) querycache.Key {
	return querycache.NewKey(KindVetSearch,
		q.FromIndex, q.ToIndex, q.SortField, q.SortOrder, q.NameLike)
}

func RacesKey() querycache.Key { return querycache.NewKey(KindRaces) }

func BreedsKey(raceID string) querycache.Key { return querycache.NewKey(KindBreeds, raceID) }

func ProvincesKey() querycache.Key { return querycache.NewKey(KindProvinces) }

func CitiesKey(provinceCode string) querycache.Key {
	return querycache.NewKey(KindCities, provinceCode)
}

func DocKindsKey() querycache.Key { return querycache.NewKey(KindDocKinds) }

func UsersKey() querycache.Key { return querycache.NewKey(KindUsers) }

func StatsKey() querycache.Key { return querycache.NewKey(KindStats) }
