package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"coopcycle-service/internal/models"
	"coopcycle-service/internal/repository"
)

// Paging bounds the page size clients may ask for.
type Paging struct {
	DefaultSize int
	MaxSize     int
}

const nullSuffix = "-is-null"

var reservedParams = map[string]bool{"page": true, "size": true, "sort": true, "filter": true}

// parsePageable reads page (0-based), size and repeated sort=prop[,asc|desc].
func (p Paging) parsePageable(q url.Values) (*repository.Pageable, error) {
	page := &repository.Pageable{Size: p.DefaultSize}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid page %q", v)
		}
		page.Page = n
	}

	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid size %q", v)
		}
		page.Size = n
	}
	if p.MaxSize > 0 && page.Size > p.MaxSize {
		page.Size = p.MaxSize
	}
	if err := page.Validate(); err != nil {
		return nil, fmt.Errorf("invalid page %d", page.Page)
	}

	for _, v := range q["sort"] {
		prop, dir, _ := strings.Cut(v, ",")
		if prop == "" {
			return nil, fmt.Errorf("invalid sort %q", v)
		}
		s := repository.Sort{Property: prop}
		switch strings.ToLower(dir) {
		case "", "asc":
		case "desc":
			s.Desc = true
		default:
			return nil, fmt.Errorf("invalid sort direction %q", dir)
		}
		page.Sort = append(page.Sort, s)
	}

	return page, nil
}

// parseFilter reads either filter=<association>-is-null or one
// <association>Id=<id> parameter.
func parseFilter(q url.Values) (repository.Filter, error) {
	var f repository.Filter

	if v := q.Get("filter"); v != "" {
		assoc, ok := strings.CutSuffix(v, nullSuffix)
		if !ok || assoc == "" {
			return f, fmt.Errorf("unsupported filter %q", v)
		}
		f = repository.Filter{Association: assoc, IsNull: true}
	}

	for key, values := range q {
		assoc, ok := strings.CutSuffix(key, "Id")
		if reservedParams[key] || !ok || assoc == "" {
			continue
		}
		if !f.IsZero() {
			return f, fmt.Errorf("only one association filter is supported")
		}
		id, err := models.ParseID(values[0])
		if err != nil || !id.IsSet() {
			return f, fmt.Errorf("invalid %s %q", key, values[0])
		}
		f = repository.Filter{Association: assoc, ID: id}
	}

	return f, nil
}

// linkHeader renders the next/prev/last/first relations for a paged listing.
func linkHeader(u *url.URL, page *repository.Pageable, total int64) string {
	if page == nil || page.Size <= 0 {
		return ""
	}

	last := 0
	if total > 0 {
		last = int((total - 1) / int64(page.Size))
	}

	link := func(n int, rel string) string {
		q := u.Query()
		q.Set("page", strconv.Itoa(n))
		q.Set("size", strconv.Itoa(page.Size))
		ref := url.URL{Path: u.Path, RawQuery: q.Encode()}
		return fmt.Sprintf(`<%s>; rel="%s"`, ref.String(), rel)
	}

	var links []string
	if page.Page < last {
		links = append(links, link(page.Page+1, "next"))
	}
	if page.Page > 0 {
		links = append(links, link(page.Page-1, "prev"))
	}
	links = append(links, link(last, "last"), link(0, "first"))
	return strings.Join(links, ",")
}
