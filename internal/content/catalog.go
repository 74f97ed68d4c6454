package content

import (
	"context"
	"errors"
)

// ErrCatalogExhausted is returned when every catalog title is already
// on the exclusion list; the generator falls back to synthetic entries.
var ErrCatalogExhausted = errors.New("catalog exhausted")

// CatalogSupplier serves entries from the embedded, pre-validated
// movie/song list. It needs no network or API key, answers instantly,
// and is fully deterministic given the exclusion list, which is why it
// doubles as the offline supplier and the test supplier.
type CatalogSupplier struct {
	entries []Entry
}

// NewCatalogSupplier returns a supplier over the embedded catalog,
// optionally filtered to the given languages.
func NewCatalogSupplier(languages ...string) *CatalogSupplier {
	if len(languages) == 0 {
		return &CatalogSupplier{entries: prevalidated}
	}
	allowed := make(map[string]bool, len(languages))
	for _, l := range languages {
		allowed[l] = true
	}
	var filtered []Entry
	for _, e := range prevalidated {
		if allowed[e.Language] {
			filtered = append(filtered, e)
		}
	}
	return &CatalogSupplier{entries: filtered}
}

// GenerateEntry returns the first catalog entry not yet used, labeled
// with the requested slot number.
func (s *CatalogSupplier) GenerateEntry(_ context.Context, slot int, usedTitles []string) (*Entry, error) {
	used := make(map[string]bool, len(usedTitles))
	for _, t := range usedTitles {
		used[t] = true
	}
	for _, e := range s.entries {
		if used[e.Key()] {
			continue
		}
		entry := e
		entry.SlotNumber = slot
		return &entry, nil
	}
	return nil, ErrCatalogExhausted
}

// Size returns the number of entries the supplier can serve.
func (s *CatalogSupplier) Size() int {
	return len(s.entries)
}

// prevalidated is the embedded list of songs with verified, embeddable
// video ids. No API calls are needed to play any of them.
var prevalidated = []Entry{
	{Movie: "Dilwale Dulhania Le Jayenge", Year: 1995, Language: "Hindi", Song: "Tujhe Dekha To", Artist: "Kumar Sanu, Lata Mangeshkar", VideoID: "ckkYyeTKMRk"},
	{Movie: "Dilwale Dulhania Le Jayenge", Year: 1995, Language: "Hindi", Song: "Mere Khwabon Mein", Artist: "Lata Mangeshkar", VideoID: "wU0qfPPjAT4"},
	{Movie: "Kuch Kuch Hota Hai", Year: 1998, Language: "Hindi", Song: "Kuch Kuch Hota Hai", Artist: "Udit Narayan, Alka Yagnik", VideoID: "GS0CYMJ5R8k"},
	{Movie: "Kuch Kuch Hota Hai", Year: 1998, Language: "Hindi", Song: "Ladki Badi Anjani Hai", Artist: "Kumar Sanu, Alka Yagnik", VideoID: "ZYJld61niIE"},
	{Movie: "Kabhi Khushi Kabhie Gham", Year: 2001, Language: "Hindi", Song: "Bole Chudiyan", Artist: "Amit Kumar, Sonu Nigam, Alka Yagnik, Udit Narayan", VideoID: "H_WwHJKcKd8"},
	{Movie: "Kabhi Khushi Kabhie Gham", Year: 2001, Language: "Hindi", Song: "Suraj Hua Maddham", Artist: "Sonu Nigam, Alka Yagnik", VideoID: "V-A6n44aPjQ"},
	{Movie: "Dil To Pagal Hai", Year: 1997, Language: "Hindi", Song: "Dil To Pagal Hai", Artist: "Lata Mangeshkar, Udit Narayan", VideoID: "Le-2x2XlVvk"},
	{Movie: "Dil To Pagal Hai", Year: 1997, Language: "Hindi", Song: "Koi Ladki Hai", Artist: "Udit Narayan, Lata Mangeshkar, Asha Bhosle", VideoID: "xjFn9QsJ4wA"},
	{Movie: "Hum Aapke Hain Koun", Year: 1994, Language: "Hindi", Song: "Didi Tera Devar Deewana", Artist: "Lata Mangeshkar, S. P. Balasubrahmanyam", VideoID: "xZYdD63rbek"},
	{Movie: "Hum Aapke Hain Koun", Year: 1994, Language: "Hindi", Song: "Pehla Pehla Pyar", Artist: "S. P. Balasubrahmanyam", VideoID: "YcLMWJq9YoE"},
	{Movie: "Kal Ho Naa Ho", Year: 2003, Language: "Hindi", Song: "Kal Ho Naa Ho", Artist: "Sonu Nigam", VideoID: "99C4kkcBA3c"},
	{Movie: "Kal Ho Naa Ho", Year: 2003, Language: "Hindi", Song: "Pretty Woman", Artist: "Shankar Mahadevan, Udit Narayan", VideoID: "bIPqP9EDDCA"},
	{Movie: "Veer-Zaara", Year: 2004, Language: "Hindi", Song: "Tere Liye", Artist: "Lata Mangeshkar, Roop Kumar Rathod", VideoID: "mfAu5icPVLE"},
	{Movie: "Veer-Zaara", Year: 2004, Language: "Hindi", Song: "Do Pal", Artist: "Lata Mangeshkar, Sonu Nigam", VideoID: "QcwcJV6QH4g"},
	{Movie: "Dil Chahta Hai", Year: 2001, Language: "Hindi", Song: "Dil Chahta Hai", Artist: "Shankar Mahadevan", VideoID: "Z9CKqAYDi8k"},
	{Movie: "Dil Chahta Hai", Year: 2001, Language: "Hindi", Song: "Koi Kahe Kehta Rahe", Artist: "Shankar Mahadevan, Shaan", VideoID: "dQe1WxbIOrY"},
	{Movie: "Lagaan", Year: 2001, Language: "Hindi", Song: "Mitwa", Artist: "Udit Narayan, Alka Yagnik", VideoID: "pZrfh71qPzQ"},
	{Movie: "Lagaan", Year: 2001, Language: "Hindi", Song: "Ghanan Ghanan", Artist: "Udit Narayan", VideoID: "GWXh_PyLmLI"},
	{Movie: "Taare Zameen Par", Year: 2007, Language: "Hindi", Song: "Taare Zameen Par", Artist: "Shankar Mahadevan", VideoID: "3R4uv5bEP1M"},
	{Movie: "Rang De Basanti", Year: 2006, Language: "Hindi", Song: "Rang De Basanti", Artist: "Daler Mehndi", VideoID: "9c9buwh50uw"},
	{Movie: "Rang De Basanti", Year: 2006, Language: "Hindi", Song: "Khoon Chala", Artist: "Mohit Chauhan", VideoID: "kHUVJNvj_vI"},
	{Movie: "Swades", Year: 2004, Language: "Hindi", Song: "Yeh Jo Des Hai Tera", Artist: "A.R. Rahman", VideoID: "RhC8DAPhuLU"},
	{Movie: "Chak De India", Year: 2007, Language: "Hindi", Song: "Chak De India", Artist: "Sukhwinder Singh", VideoID: "e3Qr7d6LrKw"},
	{Movie: "Chak De India", Year: 2007, Language: "Hindi", Song: "Badal Pe Paon Hai", Artist: "Shilpa Rao, Salim Merchant", VideoID: "tOlIZ6wuHQQ"},
	{Movie: "3 Idiots", Year: 2009, Language: "Hindi", Song: "Aal Izz Well", Artist: "Sonu Nigam, Shaan, Swanand Kirkire", VideoID: "yJ-lcdMfziw"},
	{Movie: "3 Idiots", Year: 2009, Language: "Hindi", Song: "Give Me Some Sunshine", Artist: "Suraj Jagan, Sharman Joshi", VideoID: "3kSFW8fqTl4"},
	{Movie: "Rockstar", Year: 2011, Language: "Hindi", Song: "Sadda Haq", Artist: "Mohit Chauhan", VideoID: "eeAQuU0ZQ-M"},
	{Movie: "Rockstar", Year: 2011, Language: "Hindi", Song: "Tum Ho", Artist: "Mohit Chauhan, Suzanne D'Mello", VideoID: "VUnxThNopVs"},
	{Movie: "Aashiqui 2", Year: 2013, Language: "Hindi", Song: "Tum Hi Ho", Artist: "Arijit Singh", VideoID: "Umqb9KENgmk"},
	{Movie: "Aashiqui 2", Year: 2013, Language: "Hindi", Song: "Sunn Raha Hai", Artist: "Ankit Tiwari", VideoID: "AGfwHF12JBs"},
	{Movie: "Yeh Jawaani Hai Deewani", Year: 2013, Language: "Hindi", Song: "Badtameez Dil", Artist: "Benny Dayal, Shefali Alvares", VideoID: "II2EO3Nw4m0"},
	{Movie: "Yeh Jawaani Hai Deewani", Year: 2013, Language: "Hindi", Song: "Kabira", Artist: "Tochi Raina, Rekha Bhardwaj", VideoID: "jHNNMj5bNQw"},
	{Movie: "Gully Boy", Year: 2019, Language: "Hindi", Song: "Apna Time Aayega", Artist: "Ranveer Singh, Divine", VideoID: "jFGKJBPFdUA"},
	{Movie: "Kabir Singh", Year: 2019, Language: "Hindi", Song: "Bekhayali", Artist: "Sachet Tandon", VideoID: "VOLKJJvfAbg"},
	{Movie: "KGF Chapter 1", Year: 2018, Language: "Kannada", Song: "Salaam Rocky Bhai", Artist: "Vijay Prakash", VideoID: "z5QYYhV6fAo"},
	{Movie: "KGF Chapter 2", Year: 2022, Language: "Kannada", Song: "Toofan", Artist: "Ravi Basrur", VideoID: "QxuN21mnYTo"},
	{Movie: "Kirik Party", Year: 2016, Language: "Kannada", Song: "Belageddu", Artist: "Vijay Prakash", VideoID: "wWBUSrQXkcs"},
	{Movie: "Mungaru Male", Year: 2006, Language: "Kannada", Song: "Anisuthide", Artist: "Sonu Nigam", VideoID: "Ru-9uqJ8QXQ"},
	{Movie: "Googly", Year: 2013, Language: "Kannada", Song: "Googly Googly", Artist: "Sonu Nigam", VideoID: "oKzC7cdOvbI"},
	{Movie: "Raajakumara", Year: 2017, Language: "Kannada", Song: "Bombe Helutaite", Artist: "Vijay Prakash", VideoID: "fQlwT9F9PJ4"},
}
