// Command httpdemo is a minimal HTTP binding over qfilter.Run, showing how
// a caller turns query-string parameters into a Page request. It is a
// demo collaborator, not part of the library's core API surface.
package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/remiges-tech/qfilter"
)

// Person is a minimal demo model, a trimmed-down variant of the person
// fixture (with its open profile document) the package tests use.
type Person struct {
	ID        int64     `db:"id" json:"id" qfilter:"pk"`
	Name      string    `db:"name" json:"name"`
	Age       int       `db:"age" json:"age"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Profile   map[string]interface{} `db:"profile" json:"profile" qfilter:"jsonb"`
}

func (Person) TableName() string { return "people" }

func main() {
	if err := qfilter.Register[Person](); err != nil {
		log.Fatalf("httpdemo: registering Person: %v", err)
	}

	db, err := sql.Open("pgx", "")
	if err != nil {
		log.Fatalf("httpdemo: opening database: %v", err)
	}
	defer db.Close()

	router := mux.NewRouter()
	router.HandleFunc("/people", listPeople(db)).Methods(http.MethodGet)

	log.Println("httpdemo: listening on :8080")
	log.Fatal(http.ListenAndServe(":8080", router))
}

// listPeople binds limit/offset/sort/exclude/filters query parameters to
// a qfilter.Run call and writes back the resulting Page as JSON.
func listPeople(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		params := qfilter.Paginator{
			Limit:  queryInt(q, "limit", 10),
			Offset: queryInt(q, "offset", 0),
		}
		if sorts := q.Get("sort"); sorts != "" {
			params.Sorting = strings.Split(sorts, ",")
		}
		// else leave Sorting nil: qfilter.Run defaults an empty sort to
		// ["_pk"] (spec §6 "sort ... default _pk").
		if excludes := q.Get("exclude"); excludes != "" {
			params.Excludes = strings.Split(excludes, ",")
		}

		doc := qfilter.FilterDocument{}
		if raw := q.Get("filters"); raw != "" {
			parsed, err := qfilter.ParseFilterDocument([]byte(raw))
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			doc = parsed
		}

		page, err := qfilter.Run[Person](r.Context(), db, qfilter.DialectPostgreSQL, doc, params)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	}
}

func queryInt(q map[string][]string, key string, def int) int {
	vals, ok := q[key]
	if !ok || len(vals) == 0 {
		return def
	}
	n, err := strconv.Atoi(vals[0])
	if err != nil {
		return def
	}
	return n
}
