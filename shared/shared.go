package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/lucasaveiro/service-scheduler/shared/cache"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/dto"
	"github.com/lucasaveiro/service-scheduler/shared/model"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeySeparator = ":"
	dbTag             = "db"
)

// ConvertStringToInt64s parses a comma separated list such as "1,2,5"; blank items are skipped.
func ConvertStringToInt64s(value string) ([]int64, error) {
	res := []int64{}

	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == constant.Empty {
			continue
		}

		n, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", item, err)
		}

		res = append(res, n)
	}

	return res, nil
}

// CalculateTotalPage never reports fewer than one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// ChangedFields maps the non-zero db-tagged fields of data, a struct or a pointer to one,
// to their values and stamps them as modified by actor.
func ChangedFields(data any, actor string) map[string]any {
	fields := make(map[string]any)

	val := reflect.Indirect(reflect.ValueOf(data))
	if val.Kind() != reflect.Struct {
		return model.Modified(fields, actor, timezone.Now())
	}

	typ := val.Type()

	for index := range val.NumField() {
		column := typ.Field(index).Tag.Get(dbTag)
		if column == constant.Empty || column == "-" {
			continue
		}

		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fields[column] = field.Interface()
	}

	return model.Modified(fields, actor, timezone.Now())
}

func equals(field, table string, value any) dto.Filter {
	return dto.Filter{
		Field:    field,
		Value:    value,
		Operator: dto.FilterOperatorEq,
		Table:    table,
	}
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.And(equals(fieldID, table, id))
}

// FilterByBusiness scopes a query to the rows of one business.
func FilterByBusiness(businessID, field, table string) dto.FilterGroup {
	return dto.And(equals(field, table, businessID))
}

// FilterByIDInBusiness matches one row, only when it belongs to businessID.
func FilterByIDInBusiness(id, businessID, fieldID, fieldBusinessID, table string) dto.FilterGroup {
	return dto.And(equals(fieldBusinessID, table, businessID), equals(fieldID, table, id))
}

// BuildCacheKey joins prefix and parts with ":".
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key for a list query from its paging and filter arguments.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	payload, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache key query")

		return BuildCacheKey(prefix, fmt.Sprintf("%d:%d:%s:%s", params.Page, params.Limit, params.SortBy, params.SortDir))
	}

	sum := sha256.Sum256(payload)

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// InvalidateCaches clears every key under prefix. Failures are logged, not returned.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	pattern := BuildCacheKey(prefix, constant.Asterix)

	if err := redisCache.Clear(ctx, pattern); err != nil {
		log.Error().Err(err).Str("pattern", pattern).Msg("failed to invalidate caches")
	}
}
