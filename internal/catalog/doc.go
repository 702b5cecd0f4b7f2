// Package catalog содержит справочник типов узлов.
//
// Каталог отображает имя типа узла на его NodeTypeSpec: схемы входных
// и выходных портов, реализацию по умолчанию и параметры по умолчанию.
// Компилятор резолвит типы узлов графа через каталог; сам каталог
// после инициализации не изменяется.
//
// Default() возвращает встроенный набор медиа-типов (buckets, генерация
// текста, транскрипция, поиск по изображениям, HTTP-запрос, output).
// Встраивающий код может собрать собственный каталог через New/Register.
package catalog
