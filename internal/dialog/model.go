package dialog

type State string

const (
	StateIdle State = "idle"

	// Форма сырья: следующее текстовое сообщение заполняет поле
	StateRawName  State = "raw:name"
	StateRawStock State = "raw:stock"

	// Форма продукта
	StateProdName   State = "prod:name"
	StateProdValue  State = "prod:value"
	StateProdSearch State = "prod:search"  // открыт выбор сырья, текст = поиск
	StateProdMatQty State = "prod:mat_qty" // ввод количества для выбранного сырья
)

// Ключи payload
const (
	KeyRawMaterialID = "raw_material_id"
	KeyMessageID     = "message_id"
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}
