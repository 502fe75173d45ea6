package models

import "errors"

// ErrSchemaViolation - финальный структурированный результат не прошел
// валидацию по схеме. Единственная фатальная ошибка движка: все прочие
// аномалии входного текста восстанавливаются локально.
var ErrSchemaViolation = errors.New("output schema violation")
