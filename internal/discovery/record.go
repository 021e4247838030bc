// Package discovery находит страницы с отзывами для списка поисковых запросов.
package discovery

// NotAvailable значение-заглушка для поля, которое не удалось найти
const NotAvailable = "NA"

// Record найденная ссылка для поискового запроса
type Record struct {
	// Search исходный поисковый запрос
	Search string
	// Found заголовок найденной страницы
	Found string
	// Link адрес страницы с отзывами
	Link string
	// Page номер страницы внутри многостраничного результата
	Page int
}

// NotFound возвращает запись-заглушку для запроса без результатов
func NotFound(search string) Record {
	return Record{
		Search: search,
		Found:  NotAvailable,
		Link:   NotAvailable,
		Page:   1,
	}
}

// IsNotFound проверяет, является ли запись заглушкой
func (r Record) IsNotFound() bool {
	return r.Link == NotAvailable
}
