package notification

import "errors"

// ErrPublish возвращается, когда сообщение не удалось опубликовать
var ErrPublish = errors.New("notification: failed to publish message")
