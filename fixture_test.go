package qfilter

// address is a strict nested record: every sub-field is typed and known
// ahead of time.
type address struct {
	City string `json:"city"`
	Zip  string `json:"zip"`
}

// person is the fixture model used across this package's tests: flat int,
// string and bool fields, a strict nested document (address), and an open
// nested document (profile) with arbitrary caller-supplied keys.
type person struct {
	ID      int64                  `db:"id" json:"id" qfilter:"pk"`
	Name    string                 `db:"name" json:"name"`
	Age     int                    `db:"age" json:"age"`
	Active  bool                   `db:"active" json:"active"`
	Address address                `db:"address" json:"address"`
	Profile map[string]interface{} `db:"profile" json:"profile" qfilter:"jsonb"`
}

func (person) TableName() string { return "person" }

func personMetadata() ModelMetadata {
	if err := Register[person](); err != nil {
		panic(err)
	}
	metadata, err := getModelMetadata(person{})
	if err != nil {
		panic(err)
	}
	return metadata
}
