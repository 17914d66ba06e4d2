package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError  failure.ErrorCode = "InternalServerError"
	TimeoutExceeded      failure.ErrorCode = "TimeoutExceeded"
	Forbidden            failure.ErrorCode = "Forbidden"
	ValidationError      failure.ErrorCode = "ValidationError"
	NotFound             failure.ErrorCode = "NotFound"
	MissingConfiguration failure.ErrorCode = "MissingConfiguration"

	// Коды для модуля сделок
	UpstreamFetchFailed  failure.ErrorCode = "UpstreamFetchFailed"  // Провайдер поиска недоступен или вернул ошибку
	StorageFailed        failure.ErrorCode = "StorageFailed"        // Не удалось сохранить или прочитать сделки
	AnalysisFailed       failure.ErrorCode = "AnalysisFailed"       // LLM-анализ сделок завершился ошибкой
	PlanGenerationFailed failure.ErrorCode = "PlanGenerationFailed" // LLM не смог построить план поиска
	DealNotFound         failure.ErrorCode = "DealNotFound"
)
