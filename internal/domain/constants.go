package domain

// MinCapacity минимальная вместимость слота
const MinCapacity = 1

// DefaultEventPublished мероприятие публикуется сразу, если не указано иное
const DefaultEventPublished = true
