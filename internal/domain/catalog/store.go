package catalog

// Store 가격 비교 대상 소매점입니다.
type Store string

const (
	StoreAmazon   Store = "amazon"
	StoreKabum    Store = "kabum"
	StoreMagalu   Store = "magalu"
	StoreTerabyte Store = "terabyte"
	StorePichau   Store = "pichau"
)

var storeDisplayNames = map[Store]string{
	StoreAmazon:   "Amazon",
	StoreKabum:    "KaBuM!",
	StoreMagalu:   "Magazine Luiza",
	StoreTerabyte: "Terabyte Shop",
	StorePichau:   "Pichau",
}

// Stores 정의된 모든 소매점을 고정된 순서로 반환합니다.
func Stores() []Store {
	return []Store{StoreAmazon, StoreKabum, StoreMagalu, StoreTerabyte, StorePichau}
}

func (s Store) Valid() bool {
	_, ok := storeDisplayNames[s]
	return ok
}

// DisplayName 알 수 없는 소매점은 식별자를 그대로 반환합니다.
func (s Store) DisplayName() string {
	if name, ok := storeDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

func (s Store) String() string { return string(s) }
